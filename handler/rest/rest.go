package rest

import (
	"errors"
	"net/http"

	"builderid/core"
	"builderid/handler/render"

	"github.com/go-chi/chi"
)

// Handle handle rest api request
func Handle(
	cfg *core.Config,
	builders core.BuilderStore,
	claims core.ClaimService,
	mints core.IMintService,
) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	router.Route("/builder-id", func(r chi.Router) {
		r.Get("/check/{fid}", checkHandler(builders))
		r.Get("/holders", holdersHandler(builders))
		r.Get("/info", infoHandler(cfg, builders, mints))
		r.Get("/metadata/{fid}", metadataHandler(builders))
		r.Post("/claim-message", claimMessageHandler(claims))
		r.Post("/claim", claimHandler(claims))
		r.Post("/claim/retry", claimRetryHandler(claims))
		r.Post("/claim/cancel", claimCancelHandler(claims))
	})

	return router
}

// statusFor maps taxonomy codes to http statuses. Storage failures are
// the only retryable class.
func statusFor(err error) int {
	var code core.ErrorCode
	if !errors.As(err, &code) {
		return http.StatusInternalServerError
	}

	switch code {
	case core.ErrProfileNotFound, core.ErrBuilderIDNotFound:
		return http.StatusNotFound
	case core.ErrWalletNotVerified, core.ErrInvalidSignature, core.ErrOperationForbidden:
		return http.StatusForbidden
	case core.ErrStorageUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadRequest
	}
}
