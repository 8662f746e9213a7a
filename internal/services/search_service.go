package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"tripapi/internal/models"
	"tripapi/internal/repositories/interfaces"
	"tripapi/internal/utils"
	"tripapi/internal/validators"
	"tripapi/pkg/logger"
	"tripapi/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SearchService interface {
	// FindTrips ranks trips departing on the requested date against the
	// origin and destination text, applies the hard filters, and returns
	// the result ordered best-first. Identical criteria within the cache
	// window are answered from cache, and every hit slides the entry's
	// expiry forward.
	FindTrips(ctx context.Context, criteria *models.SearchCriteria) ([]*models.RankedTrip, error)
}

type searchService struct {
	tripRepo      interfaces.TripRepository
	vehicleRepo   interfaces.VehicleRepository
	cache         CacheService
	metrics       *metrics.Metrics
	logger        *logger.Logger
	cacheTTL      time.Duration
	rankThreshold float64
}

func NewSearchService(
	tripRepo interfaces.TripRepository,
	vehicleRepo interfaces.VehicleRepository,
	cache CacheService,
	m *metrics.Metrics,
	log *logger.Logger,
	cacheTTL time.Duration,
	rankThreshold float64,
) SearchService {
	if cacheTTL <= 0 {
		cacheTTL = utils.DefaultSearchCacheTTL
	}
	if rankThreshold <= 0 {
		rankThreshold = utils.DefaultRankThreshold
	}
	return &searchService{
		tripRepo:      tripRepo,
		vehicleRepo:   vehicleRepo,
		cache:         cache,
		metrics:       m,
		logger:        log,
		cacheTTL:      cacheTTL,
		rankThreshold: rankThreshold,
	}
}

func (s *searchService) FindTrips(ctx context.Context, criteria *models.SearchCriteria) ([]*models.RankedTrip, error) {
	criteria.LeaveDate = utils.DateOnly(criteria.LeaveDate)
	if err := validators.ValidateSearchCriteria(criteria); err != nil {
		return nil, err
	}

	key, err := s.cacheKey(criteria)
	if err != nil {
		return nil, err
	}

	var cached []*models.RankedTrip
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		// Popular searches stay warm for as long as they keep being
		// asked.
		if err := s.cache.SetExpire(ctx, key, s.cacheTTL); err != nil {
			s.logger.WithError(err).Warn("Failed to extend search cache entry")
		}
		if s.metrics != nil {
			s.metrics.SearchCacheHits.Inc()
		}
		return cached, nil
	}
	if s.metrics != nil {
		s.metrics.SearchCacheMiss.Inc()
	}

	started := time.Now()
	results, err := s.search(ctx, criteria)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.SearchDuration.Observe(time.Since(started).Seconds())
	}

	if err := s.cache.Set(ctx, key, results, s.cacheTTL); err != nil {
		s.logger.WithError(err).Warn("Failed to cache search results")
	}
	return results, nil
}

func (s *searchService) search(ctx context.Context, criteria *models.SearchCriteria) ([]*models.RankedTrip, error) {
	candidates, err := s.tripRepo.FindByLeaveDate(ctx, criteria.LeaveDate, criteria.Passengers)
	if err != nil {
		return nil, fmt.Errorf("failed to find trips: %w", err)
	}

	results := make([]*models.RankedTrip, 0, len(candidates))
	for _, trip := range candidates {
		originRank := utils.TextRank(trip.Origin, criteria.Origin)
		destinationRank := utils.TextRank(trip.Destination, criteria.Destination)
		if originRank < s.rankThreshold || destinationRank < s.rankThreshold {
			continue
		}
		results = append(results, &models.RankedTrip{
			Trip:            trip,
			OriginRank:      originRank,
			DestinationRank: destinationRank,
		})
	}

	results, err = s.applyFilters(ctx, criteria, results)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].OriginRank != results[j].OriginRank {
			return results[i].OriginRank > results[j].OriginRank
		}
		return results[i].DestinationRank > results[j].DestinationRank
	})
	return results, nil
}

func (s *searchService) applyFilters(ctx context.Context, criteria *models.SearchCriteria, results []*models.RankedTrip) ([]*models.RankedTrip, error) {
	filtered := results[:0]
	for _, r := range results {
		if criteria.MinTakeOffTime != "" && r.Trip.TakeOffTime < criteria.MinTakeOffTime {
			continue
		}
		if criteria.MaxTakeOffTime != "" && r.Trip.TakeOffTime > criteria.MaxTakeOffTime {
			continue
		}
		if criteria.MaxAmount != nil && r.Trip.Amount > *criteria.MaxAmount {
			continue
		}
		filtered = append(filtered, r)
	}

	if criteria.VehicleKind == "" && len(criteria.Preferences) == 0 {
		return filtered, nil
	}

	vehicles, err := s.loadVehicles(ctx, filtered)
	if err != nil {
		return nil, err
	}

	matched := filtered[:0]
	for _, r := range filtered {
		vehicle, ok := vehicles[r.Trip.VehicleID]
		if !ok {
			continue
		}
		if criteria.VehicleKind != "" && vehicle.Kind != criteria.VehicleKind {
			continue
		}
		if !vehicle.Specifications.Matches(criteria.Preferences) {
			continue
		}
		matched = append(matched, r)
	}
	return matched, nil
}

func (s *searchService) loadVehicles(ctx context.Context, results []*models.RankedTrip) (map[primitive.ObjectID]*models.Vehicle, error) {
	seen := make(map[primitive.ObjectID]bool, len(results))
	ids := make([]primitive.ObjectID, 0, len(results))
	for _, r := range results {
		if !seen[r.Trip.VehicleID] {
			seen[r.Trip.VehicleID] = true
			ids = append(ids, r.Trip.VehicleID)
		}
	}
	if len(ids) == 0 {
		return map[primitive.ObjectID]*models.Vehicle{}, nil
	}

	vehicles, err := s.vehicleRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load vehicles: %w", err)
	}
	return vehicles, nil
}

func (s *searchService) cacheKey(criteria *models.SearchCriteria) (string, error) {
	fingerprint, err := utils.Fingerprint(criteria)
	if err != nil {
		return "", err
	}
	return utils.CacheSearchTripsPrefix + fingerprint, nil
}
