package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/preston-bernstein/vmhl-standings/internal/domain/teams"
	"github.com/preston-bernstein/vmhl-standings/internal/logging"
	"github.com/preston-bernstein/vmhl-standings/internal/teamstore"
)

type teamService interface {
	List(ctx context.Context) ([]teams.Team, error)
	Create(ctx context.Context, draft teams.Draft) (teams.Team, error)
	Update(ctx context.Context, id int, patch teamstore.Patch) (teams.Team, error)
	Delete(ctx context.Context, id int) error
	Swap(ctx context.Context, firstID, secondID int) ([2]teams.Team, error)
}

type createRequest struct {
	Name    string `json:"name" validate:"required,max=120"`
	LogoURL string `json:"logo_url"`
}

type updateRequest struct {
	ID int `json:"id" validate:"required,gt=0"`
	teamstore.Patch
}

type deleteRequest struct {
	ID int `json:"id" validate:"required,gt=0"`
}

type swapRequest struct {
	FirstID  int `json:"first_id" validate:"required,gt=0"`
	SecondID int `json:"second_id" validate:"required,gt=0,nefield=FirstID"`
}

// TeamsHandler serves the standings collection.
type TeamsHandler struct {
	svc      teamService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewTeamsHandler constructs a TeamsHandler.
func NewTeamsHandler(svc teamService, logger *slog.Logger) *TeamsHandler {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &TeamsHandler{svc: svc, validate: v, logger: logger}
}

// List returns every team ordered by position.
func (h *TeamsHandler) List(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if out == nil {
		out = []teams.Team{}
	}
	writeJSON(w, r, http.StatusOK, out)
}

// Create appends a new team at the bottom of the table.
func (h *TeamsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if !h.decode(w, r, &req) {
		return
	}
	created, err := h.svc.Create(r.Context(), teams.Draft{Name: req.Name, LogoURL: req.LogoURL})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	logging.Info(loggerFromContext(r, h.logger), "team created", slog.Int(logging.FieldTeamID, created.ID))
	writeJSON(w, r, http.StatusCreated, created)
}

// Update applies the fields present in the body to team id.
func (h *TeamsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if !h.decode(w, r, &req) {
		return
	}
	updated, err := h.svc.Update(r.Context(), req.ID, req.Patch)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, updated)
}

// Delete removes team id.
func (h *TeamsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req deleteRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.svc.Delete(r.Context(), req.ID); err != nil {
		h.fail(w, r, err)
		return
	}
	logging.Info(loggerFromContext(r, h.logger), "team deleted", slog.Int(logging.FieldTeamID, req.ID))
	writeJSON(w, r, http.StatusOK, map[string]bool{"success": true})
}

// Swap exchanges the positions of two teams in one transaction.
func (h *TeamsHandler) Swap(w http.ResponseWriter, r *http.Request) {
	var req swapRequest
	if !h.decode(w, r, &req) {
		return
	}
	pair, err := h.svc.Swap(r.Context(), req.FirstID, req.SecondID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, pair[:])
}

func (h *TeamsHandler) decode(w http.ResponseWriter, r *http.Request, dest any) bool {
	if err := render.DecodeJSON(r.Body, dest); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	if err := h.validate.Struct(dest); err != nil {
		writeError(w, r, http.StatusBadRequest, validationMessage(err))
		return false
	}
	return true
}

func (h *TeamsHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, teamstore.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "Team not found")
	case errors.Is(err, teamstore.ErrNoFields):
		writeError(w, r, http.StatusBadRequest, "No fields to update")
	default:
		logging.Error(loggerFromContext(r, h.logger), "team request failed", err)
		writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request"
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
	}
	return "invalid " + strings.Join(parts, ", ")
}
