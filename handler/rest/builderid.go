package rest

import (
	"net/http"
	"strconv"

	"builderid/core"
	"builderid/handler/param"
	"builderid/handler/render"

	"github.com/go-chi/chi"
)

func checkHandler(builders core.BuilderStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		fid, err := fidParam(r)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		record, err := builders.Find(ctx, fid)
		if err != nil {
			render.Error(w, http.StatusServiceUnavailable, core.ErrStorageUnavailable)
			return
		}

		if record.ID == 0 {
			render.JSON(w, render.H{"has_minted": false})
			return
		}

		render.JSON(w, render.H{"has_minted": true, "record": record})
	}
}

func holdersHandler(builders core.BuilderStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			Limit  int `json:"limit"`
			Offset int `json:"offset"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		if params.Limit <= 0 {
			params.Limit = 20
		}

		holders, err := builders.List(ctx, params.Limit, params.Offset)
		if err != nil {
			render.Error(w, http.StatusServiceUnavailable, core.ErrStorageUnavailable)
			return
		}

		count, err := builders.Count(ctx)
		if err != nil {
			render.Error(w, http.StatusServiceUnavailable, core.ErrStorageUnavailable)
			return
		}

		render.JSON(w, render.H{"holders": holders, "count": count})
	}
}

func infoHandler(cfg *core.Config, builders core.BuilderStore, mints core.IMintService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		count, err := builders.Count(ctx)
		if err != nil {
			render.Error(w, http.StatusServiceUnavailable, core.ErrStorageUnavailable)
			return
		}

		render.JSON(w, render.H{
			"contract":     mints.Contract(),
			"chain_id":     mints.ChainID(),
			"name":         cfg.Chain.CollectionName,
			"symbol":       cfg.Chain.CollectionSymbol,
			"mint_price":   mints.MintPrice().String(),
			"total_minted": count,
		})
	}
}

func metadataHandler(builders core.BuilderStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		fid, err := fidParam(r)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		record, err := builders.Find(ctx, fid)
		if err != nil {
			render.Error(w, http.StatusServiceUnavailable, core.ErrStorageUnavailable)
			return
		}

		if record.ID == 0 {
			render.NotFoundRequest(w, core.ErrBuilderIDNotFound)
			return
		}

		// rendered from the mint-time snapshot, never from the live profile
		profile := &core.BuilderProfile{
			FID:         record.FID,
			Username:    record.Username,
			NeynarScore: record.NeynarScore,
			PowerBadge:  record.PowerBadge,
		}
		stats := &core.BuilderStats{
			ShippedCount: record.ShippedCount,
			BuilderScore: record.BuilderScore,
			TalentScore:  record.TalentScore,
			EthosScore:   record.EthosScore,
			EthosLevel:   record.EthosLevel,
		}

		render.JSON(w, core.BuildMetadata(profile, stats, record.ImageURL, record.TokenID, record.MintedAt))
	}
}

func claimMessageHandler(claims core.ClaimService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			FID           int64  `json:"fid"`
			WalletAddress string `json:"wallet_address"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		ticket, err := claims.Begin(ctx, params.FID, params.WalletAddress)
		if err != nil {
			render.Error(w, statusFor(err), err)
			return
		}

		if ticket.Existing != nil {
			render.JSON(w, render.H{"has_minted": true, "record": ticket.Existing})
			return
		}

		render.JSON(w, ticket)
	}
}

func claimHandler(claims core.ClaimService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var sub core.ClaimSubmission
		if err := param.Binding(r, &sub); err != nil {
			render.BadRequest(w, err)
			return
		}

		record, err := claims.Submit(ctx, &sub)
		if err != nil {
			render.Error(w, statusFor(err), err)
			return
		}

		render.JSON(w, render.H{"success": true, "record": record})
	}
}

func claimRetryHandler(claims core.ClaimService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			FID           int64  `json:"fid"`
			WalletAddress string `json:"wallet_address"`
			TxHash        string `json:"tx_hash"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		record, err := claims.Resume(ctx, params.FID, params.WalletAddress, params.TxHash)
		if err != nil {
			render.Error(w, statusFor(err), err)
			return
		}

		render.JSON(w, render.H{"success": true, "record": record})
	}
}

func claimCancelHandler(claims core.ClaimService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			FID int64 `json:"fid"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		claims.Cancel(ctx, params.FID)
		render.JSON(w, render.H{"success": true})
	}
}

func fidParam(r *http.Request) (int64, error) {
	fid, err := strconv.ParseInt(chi.URLParam(r, "fid"), 10, 64)
	if err != nil || fid <= 0 {
		return 0, core.ErrProfileNotFound
	}
	return fid, nil
}
