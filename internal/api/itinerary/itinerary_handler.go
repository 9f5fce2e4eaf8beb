package itinerary

import (
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/joonbang02/tripweaver/internal/api"
	"github.com/joonbang02/tripweaver/internal/types"
)

type HandlerImpl struct {
	itineraryService Service
	logger           *slog.Logger
}

func NewHandlerImpl(itineraryService Service, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		itineraryService: itineraryService,
		logger:           logger,
	}
}

// Generate runs the full planning pipeline for the posted preferences and
// returns the itinerary bundle.
func (h *HandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "Generate", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/itinerary/generate"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "Generate"))
	l.DebugContext(ctx, "Generate itinerary handler invoked")

	var inputs types.GenerationInputs
	if err := api.DecodeJSONBody(w, r, &inputs); err != nil {
		l.ErrorContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	inputs.Normalize()
	if inputs.Destination == "" {
		l.ErrorContext(ctx, "Destination is required")
		api.ErrorResponse(w, r, http.StatusBadRequest, "destination is required")
		return
	}

	bundle, err := h.itineraryService.Generate(ctx, inputs)
	if err != nil {
		l.ErrorContext(ctx, "Itinerary generation failed", slog.Any("error", err))
		span.RecordError(err)
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to generate itinerary")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, bundle)
}
