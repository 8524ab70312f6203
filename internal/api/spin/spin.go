package spin

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	dto "slot_engine/internal/api/dto/spin"
	"slot_engine/internal/converter"
	"slot_engine/internal/model"
	"slot_engine/internal/service"
	"slot_engine/pkg/req"
	"slot_engine/pkg/resp"
)

type HandlerDeps struct {
	Serv service.SpinService
	Log  *zap.Logger
}

type Handler struct {
	serv service.SpinService
	log  *zap.Logger
}

func NewHandler(deps HandlerDeps) *Handler {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{serv: deps.Serv, log: log}
}

// Spin выполняет спин и возвращает результат с балансом
func (h *Handler) Spin(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.SpinRequest](r.Body)
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	result, err := h.serv.Spin(r.Context(), converter.ToBetContext(payload))
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToSpinResponse(*result))
}

// BuyBonus покупка бонусного раунда
func (h *Handler) BuyBonus(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.BonusSpinRequest](r.Body)
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	result, err := h.serv.BuyBonus(r.Context(), payload.Bet)
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToSpinResponse(*result))
}

// SlamStop мгновенная остановка: всех барабанов либо одного
func (h *Handler) SlamStop(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.SlamStopRequest](r.Body)
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	if payload.Reel != nil {
		err = h.serv.SlamStopReel(r.Context(), *payload.Reel)
	} else {
		err = h.serv.SlamStopAll(r.Context())
	}
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Events поток событий презентации спина через SSE
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	events, err := h.serv.Events(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(converter.ToEvent(ev))
			if err != nil {
				h.log.Warn("event marshal failed", zap.Error(err))
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, data)
			flusher.Flush()
		}
	}
}

// CheckData баланс и остаток фриспинов
func (h *Handler) CheckData(w http.ResponseWriter, r *http.Request) {
	data, err := h.serv.CheckData(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToDataResponse(*data))
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidBet):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, model.ErrSpinInProgress):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, model.ErrNotEnoughBalance):
		http.Error(w, err.Error(), http.StatusPaymentRequired)
	case errors.Is(err, model.ErrSessionNotFound):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	default:
		h.log.Error("spin handler error", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
