package game

import (
	"cases_backend/internal/apperr"
	dto "cases_backend/internal/api/dto/game"
	"cases_backend/internal/converter"
	"cases_backend/internal/model"
	"cases_backend/internal/service"
	"cases_backend/pkg/req"
	"cases_backend/pkg/resp"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type HandlerDeps struct {
	Serv service.GameService
}

type Handler struct {
	serv service.GameService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.StartRequest](r.Body)
	if err != nil {
		resp.WriteErrorResponse(w, http.StatusBadRequest, "invalid request", apperr.Code(apperr.ErrValidation))
		return
	}

	round, err := h.serv.Start(r.Context(), converter.ToStartGame(payload))
	if err != nil {
		writeError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusCreated, converter.ToRoundResponse(round))
}

func (h *Handler) OpenCase(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.OpenCaseRequest](r.Body)
	if err != nil {
		resp.WriteErrorResponse(w, http.StatusBadRequest, "invalid request", apperr.Code(apperr.ErrValidation))
		return
	}

	result, err := h.serv.OpenCase(r.Context(), chi.URLParam(r, "roundID"), payload.CaseNumber)
	if err != nil {
		writeError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToOpenCaseResponse(result))
}

func (h *Handler) RequestOffer(w http.ResponseWriter, r *http.Request) {
	round, err := h.serv.RequestOffer(r.Context(), chi.URLParam(r, "roundID"))
	if err != nil {
		writeError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToRoundResponse(round))
}

func (h *Handler) Decide(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.DecideRequest](r.Body)
	if err != nil {
		resp.WriteErrorResponse(w, http.StatusBadRequest, "invalid request", apperr.Code(apperr.ErrValidation))
		return
	}

	result, err := h.serv.Decide(r.Context(), chi.URLParam(r, "roundID"), model.Decision(payload.Decision))
	if err != nil {
		writeError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToDecideResponse(result))
}

func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	round, err := h.serv.GetState(r.Context(), chi.URLParam(r, "roundID"))
	if err != nil {
		writeError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToRoundResponse(round))
}

func (h *Handler) Active(w http.ResponseWriter, r *http.Request) {
	round, err := h.serv.ActiveRound(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToRoundResponse(round))
}

// writeError maps taxonomy errors to status codes. Internal details
// never reach the client.
func writeError(w http.ResponseWriter, err error) {
	status := apperr.HTTPStatus(err)
	msg := err.Error()
	if status >= http.StatusInternalServerError {
		msg = "internal error"
	}
	resp.WriteErrorResponse(w, status, msg, apperr.Code(err))
}
