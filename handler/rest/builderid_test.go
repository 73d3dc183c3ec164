package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"builderid/core"
	"builderid/service/mint"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStore struct {
	records map[int64]*core.BuilderID
}

func (s *stubStore) Save(ctx context.Context, record *core.BuilderID) error { return nil }

func (s *stubStore) Find(ctx context.Context, fid int64) (*core.BuilderID, error) {
	if record, ok := s.records[fid]; ok {
		return record, nil
	}
	return &core.BuilderID{}, nil
}

func (s *stubStore) Exists(ctx context.Context, fid int64) (bool, error) {
	record, _ := s.Find(ctx, fid)
	return record.ID > 0, nil
}

func (s *stubStore) List(ctx context.Context, limit, offset int) ([]*core.BuilderID, error) {
	records := make([]*core.BuilderID, 0, len(s.records))
	for _, record := range s.records {
		records = append(records, record)
	}
	return records, nil
}

func (s *stubStore) Count(ctx context.Context) (int64, error) {
	return int64(len(s.records)), nil
}

type stubClaims struct {
	ticket *core.ClaimTicket
	err    error
}

func (s *stubClaims) Begin(ctx context.Context, fid int64, walletAddress string) (*core.ClaimTicket, error) {
	return s.ticket, s.err
}

func (s *stubClaims) Submit(ctx context.Context, sub *core.ClaimSubmission) (*core.BuilderID, error) {
	return nil, s.err
}

func (s *stubClaims) Resume(ctx context.Context, fid int64, walletAddress, txHash string) (*core.BuilderID, error) {
	return nil, s.err
}

func (s *stubClaims) Cancel(ctx context.Context, fid int64) {}

func testHandler(store core.BuilderStore, claims core.ClaimService) http.Handler {
	cfg := &core.Config{}
	cfg.Chain.CollectionName = "Builder ID"
	cfg.Chain.CollectionSymbol = "BUILDER"

	mints, err := mint.New(core.Chain{
		ChainID:   8453,
		Contract:  "0xbe2940989E203FE1cfD75e0bAa1202D58A273956",
		MintPrice: "0.0005",
		GasBuffer: "0.0002",
	})
	if err != nil {
		panic(err)
	}

	return Handle(cfg, store, claims, mints)
}

func TestCheckHandler(t *testing.T) {
	store := &stubStore{records: map[int64]*core.BuilderID{
		1234: {
			ID:            1,
			FID:           1234,
			Username:      "alice",
			WalletAddress: "0xabc0000000000000000000000000000000000001",
			TxHash:        "0x61cb4643fde0c430a427162e5cbdd1d5e3ae0f17e6e796366e5f1500424daf06",
			MintedAt:      time.Now(),
		},
	}}
	h := testHandler(store, &stubClaims{})

	t.Run("minted", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest("GET", "/builder-id/check/1234", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			HasMinted bool `json:"has_minted"`
			Record    *struct {
				FID           int64  `json:"fid"`
				WalletAddress string `json:"wallet_address"`
				TxHash        string `json:"tx_hash"`
			} `json:"record"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.True(t, body.HasMinted)
		require.NotNil(t, body.Record)
		assert.Equal(t, int64(1234), body.Record.FID)
		assert.Equal(t, "0xabc0000000000000000000000000000000000001", body.Record.WalletAddress)
	})

	t.Run("not minted", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest("GET", "/builder-id/check/999", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			HasMinted bool `json:"has_minted"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.False(t, body.HasMinted)
	})

	t.Run("bad fid", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest("GET", "/builder-id/check/abc", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestInfoHandler(t *testing.T) {
	store := &stubStore{records: map[int64]*core.BuilderID{
		1: {ID: 1, FID: 1},
		2: {ID: 2, FID: 2},
	}}
	h := testHandler(store, &stubClaims{})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/builder-id/info", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Contract    string `json:"contract"`
		ChainID     uint64 `json:"chain_id"`
		Name        string `json:"name"`
		Symbol      string `json:"symbol"`
		MintPrice   string `json:"mint_price"`
		TotalMinted int64  `json:"total_minted"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, "0xbe2940989e203fe1cfd75e0baa1202d58a273956", body.Contract)
	assert.Equal(t, uint64(8453), body.ChainID)
	assert.Equal(t, "Builder ID", body.Name)
	assert.Equal(t, "0.0005", body.MintPrice)
	assert.Equal(t, int64(2), body.TotalMinted)
}

func TestClaimMessageHandlerErrors(t *testing.T) {
	store := &stubStore{records: map[int64]*core.BuilderID{}}

	cases := []struct {
		err    error
		status int
	}{
		{core.ErrProfileNotFound, http.StatusNotFound},
		{core.ErrWalletNotVerified, http.StatusForbidden},
		{core.ErrStorageUnavailable, http.StatusServiceUnavailable},
		{core.ErrInsufficientBalance, http.StatusBadRequest},
	}

	for _, c := range cases {
		t.Run(c.err.Error(), func(t *testing.T) {
			h := testHandler(store, &stubClaims{err: c.err})

			w := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/builder-id/claim-message",
				strings.NewReader(`{"fid": 1234, "wallet_address": "0xabc0000000000000000000000000000000000001"}`))
			req.Header.Set("Content-Type", "application/json")
			h.ServeHTTP(w, req)

			assert.Equal(t, c.status, w.Code)

			var body struct {
				Reason string `json:"reason"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, c.err.Error(), body.Reason)
		})
	}
}
