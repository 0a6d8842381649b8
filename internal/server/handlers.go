package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pfdash/finance-dashboard/internal/domain"
	"github.com/pfdash/finance-dashboard/internal/store"
)

func abortWithError(c *gin.Context, status int, code string, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, ErrorResponse{Error: code, Message: err.Error()})
}

func badRequest(c *gin.Context, err error) {
	abortWithError(c, http.StatusBadRequest, "bad_request", err)
}

// storeError maps store sentinels onto HTTP statuses.
func storeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrProfileNotFound):
		abortWithError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, store.ErrInvalidID), errors.Is(err, store.ErrEmptyUpdate):
		badRequest(c, err)
	case errors.Is(err, store.ErrRejectedUpdate):
		abortWithError(c, http.StatusUnprocessableEntity, "invalid_profile", err)
	default:
		abortWithError(c, http.StatusInternalServerError, "internal_error", err)
	}
}

// projectSavings handles POST /projections/savings
func (s *Server) projectSavings(c *gin.Context) {
	var req SavingsProjectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	in := req.input()
	res := s.engine.ProjectSavings(in, req.Goal, req.Horizon)
	c.JSON(http.StatusOK, SavingsProjectionResponse{Frequency: in.Frequency, SavingsResult: res})
}

// projectPEA handles POST /projections/pea
func (s *Server) projectPEA(c *gin.Context) {
	var req PEAProjectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, s.engine.ProjectPEA(req.input()))
}

// bindProfile decodes, normalizes and validates a profile body.
func (s *Server) bindProfile(c *gin.Context) (*domain.Profile, bool) {
	var p domain.Profile
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, err)
		return nil, false
	}
	p = p.Normalize()
	if err := s.parser.ValidateProfile(&p); err != nil {
		abortWithError(c, http.StatusUnprocessableEntity, "invalid_profile", err)
		return nil, false
	}
	return &p, true
}

// dashboard handles POST /dashboard
func (s *Server) dashboard(c *gin.Context) {
	p, ok := s.bindProfile(c)
	if !ok {
		return
	}
	s.respondDashboard(c, p)
}

func (s *Server) respondDashboard(c *gin.Context, p *domain.Profile) {
	report, err := s.engine.BuildDashboard(c.Request.Context(), *p)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "internal_error", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// createProfile handles POST /profiles
func (s *Server) createProfile(c *gin.Context) {
	p, ok := s.bindProfile(c)
	if !ok {
		return
	}
	p.ID = ""
	if err := s.store.Save(c.Request.Context(), p); err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// getProfile handles GET /profiles/:id
func (s *Server) getProfile(c *gin.Context) {
	p, err := s.store.Load(c.Request.Context(), c.Param("id"))
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// replaceProfile handles PUT /profiles/:id
func (s *Server) replaceProfile(c *gin.Context) {
	p, ok := s.bindProfile(c)
	if !ok {
		return
	}
	p.ID = c.Param("id")
	if err := s.store.Save(c.Request.Context(), p); err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// checkProfile normalizes and validates a merged profile inside the store's update.
func (s *Server) checkProfile(p *domain.Profile) error {
	*p = p.Normalize()
	return s.parser.ValidateProfile(p)
}

// updateProfile handles PATCH /profiles/:id
func (s *Server) updateProfile(c *gin.Context) {
	var u domain.ProfileUpdate
	if err := c.ShouldBindJSON(&u); err != nil {
		badRequest(c, err)
		return
	}
	updated, err := s.store.Update(c.Request.Context(), c.Param("id"), u, s.checkProfile)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// deleteProfile handles DELETE /profiles/:id
func (s *Server) deleteProfile(c *gin.Context) {
	if err := s.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		storeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// profileDashboard handles GET /profiles/:id/dashboard
func (s *Server) profileDashboard(c *gin.Context) {
	p, err := s.store.Load(c.Request.Context(), c.Param("id"))
	if err != nil {
		storeError(c, err)
		return
	}
	normalized := p.Normalize()
	s.respondDashboard(c, &normalized)
}
