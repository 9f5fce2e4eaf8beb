package container

import (
	"log/slog"

	"github.com/joonbang02/tripweaver/config"
	"github.com/joonbang02/tripweaver/internal/api/geocode"
	"github.com/joonbang02/tripweaver/internal/api/hotel"
	"github.com/joonbang02/tripweaver/internal/api/itinerary"
	"github.com/joonbang02/tripweaver/internal/api/poi"
)

// Container holds all application dependencies
type Container struct {
	Config           *config.Config
	Logger           *slog.Logger
	ItineraryHandler *itinerary.HandlerImpl
}

// NewContainer wires upstream clients, domain services, and handlers.
func NewContainer(cfg *config.Config, logger *slog.Logger) (*Container, error) {
	geocodeClient := geocode.NewNominatimClient(cfg.Upstream.Geocoder.BaseURL, cfg.Upstream.Geocoder.Timeout)
	geocodeService := geocode.NewServiceImpl(geocodeClient, cfg.Upstream.Geocoder.CacheTTL,
		cfg.Upstream.Geocoder.MaxCandidates, logger)

	overpassClient := poi.NewMirrorClient(cfg.Upstream.Overpass.Mirrors, cfg.Upstream.Overpass.MaxRetries,
		cfg.Upstream.Overpass.RetryBaseWait, cfg.Upstream.Overpass.Timeout, logger)
	poiService := poi.NewServiceImpl(overpassClient, cfg.Upstream.Overpass.CacheTTL, logger)

	// Without a configured inventory the hotel service falls back to its
	// deterministic generator.
	var inventory hotel.InventoryClient
	if cfg.Upstream.HotelInventory.Enabled {
		inventory = hotel.NewHTTPInventoryClient(cfg.Upstream.HotelInventory.BaseURL, cfg.Upstream.HotelInventory.Timeout)
	}
	hotelService := hotel.NewServiceImpl(inventory, logger)

	tuning := tuningFromConfig(cfg)
	itineraryService := itinerary.NewServiceImpl(geocodeService, poiService, hotelService,
		tuning, cfg.Itinerary.BundleCacheTTL, logger)
	itineraryHandler := itinerary.NewHandlerImpl(itineraryService, logger)

	return &Container{
		Config:           cfg,
		Logger:           logger,
		ItineraryHandler: itineraryHandler,
	}, nil
}

func tuningFromConfig(cfg *config.Config) itinerary.Tuning {
	tuning := itinerary.DefaultTuning()
	it := cfg.Itinerary
	if it.PerDayCapDense > 0 {
		tuning.PerDayCapDense = it.PerDayCapDense
	}
	if it.PerDayCapMedium > 0 {
		tuning.PerDayCapMedium = it.PerDayCapMedium
	}
	if it.PerDayCapSparse > 0 {
		tuning.PerDayCapSparse = it.PerDayCapSparse
	}
	if it.DenseRadiusKm > 0 {
		tuning.DenseRadiusKm = it.DenseRadiusKm
	}
	if it.MediumRadiusKm > 0 {
		tuning.MediumRadiusKm = it.MediumRadiusKm
	}
	if it.MinSelection > 0 {
		tuning.MinSelection = it.MinSelection
	}
	if it.ClusterMaxRounds > 0 {
		tuning.ClusterMaxRounds = it.ClusterMaxRounds
	}
	if it.DensitySpeedFloor > 0 {
		tuning.DensitySpeedFloor = it.DensitySpeedFloor
	}
	if it.DensitySpeedBase > 0 {
		tuning.DensitySpeedBase = it.DensitySpeedBase
	}
	if it.DensitySpeedSlope > 0 {
		tuning.DensitySpeedSlope = it.DensitySpeedSlope
	}
	if it.ShortLegKm > 0 {
		tuning.ShortLegKm = it.ShortLegKm
	}
	if it.ShortLegOverhead > 0 {
		tuning.ShortLegOverhead = it.ShortLegOverhead
	}
	if it.LongTransitLegKm > 0 {
		tuning.LongTransitLegKm = it.LongTransitLegKm
	}
	if it.LongTransitExtraMin > 0 {
		tuning.LongTransitExtraMin = it.LongTransitExtraMin
	}
	if it.DwellMinutesPerPOI > 0 {
		tuning.DwellMinutesPerPOI = it.DwellMinutesPerPOI
	}
	return tuning
}
