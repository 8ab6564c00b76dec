package http

import (
	"net/http"

	"go.uber.org/zap"

	"ammpool/internal/transport/http/validate"
)

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	req, code, err := validate.QuoteRequestValidate(r)
	if err != nil {
		if code == 0 {
			code = http.StatusBadRequest
		}
		http.Error(w, err.Error(), code)
		return
	}

	aToB, ok := s.direction(req.AssetIn)
	if !ok {
		http.Error(w, "asset_in is not from pool", http.StatusBadRequest)
		return
	}

	out, err := s.pool.Quote(aToB, req.AmountIn)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte(out.String())); err != nil {
		s.log.Warn("quote write error", zap.Error(err))
	}
}

func (s *Server) handleReserves(w http.ResponseWriter, r *http.Request) {
	reserveA, reserveB := s.pool.Reserves()
	assetA, assetB := s.pool.Assets()

	s.writeJSON(w, map[string]string{
		"asset_a":      assetA.Hex(),
		"asset_b":      assetB.Hex(),
		"reserve_a":    reserveA.String(),
		"reserve_b":    reserveB.String(),
		"total_shares": s.pool.TotalShares().String(),
	})
}

func (s *Server) handlePrice(w http.ResponseWriter, r *http.Request) {
	price, err := s.pool.Price()
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte(price.String())); err != nil {
		s.log.Warn("price write error", zap.Error(err))
	}
}

func (s *Server) handleShares(w http.ResponseWriter, r *http.Request) {
	holder, code, err := validate.HolderValidate(r)
	if err != nil {
		if code == 0 {
			code = http.StatusBadRequest
		}
		http.Error(w, err.Error(), code)
		return
	}

	s.writeJSON(w, map[string]string{
		"holder": holder.Hex(),
		"shares": s.pool.SharesOf(holder).String(),
	})
}
