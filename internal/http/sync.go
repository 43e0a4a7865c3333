package http

import (
	"errors"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/clippings/internal/kindle"
	"github.com/mrlokans/clippings/internal/scheduler"
)

type SyncController struct {
	sync SyncService
}

func NewSyncController(sync SyncService) *SyncController {
	return &SyncController{sync: sync}
}

// Status returns the sync configuration, next run and last outcome.
func (s *SyncController) Status(c *gin.Context) {
	c.JSON(http.StatusOK, s.sync.Report())
}

// RunNow imports the configured clippings file immediately.
func (s *SyncController) RunNow(c *gin.Context) {
	session, err := s.sync.Sync()
	switch {
	case errors.Is(err, scheduler.ErrSyncPathNotConfigured):
		respondError(c, http.StatusConflict, "not_configured", err.Error(), nil)
		return
	case errors.Is(err, os.ErrNotExist):
		respondError(c, http.StatusNotFound, "file_not_found", err.Error(), nil)
		return
	case errors.Is(err, kindle.ErrMalformedActionLine), errors.Is(err, kindle.ErrTruncatedBlock),
		errors.Is(err, kindle.ErrUnknownAction):
		respondError(c, http.StatusUnprocessableEntity, "parse_failed", err.Error(), nil)
		return
	case err != nil:
		respondInternalError(c, err, "clippings sync")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"imported": session != nil,
		"import":   session,
		"sync":     s.sync.Report(),
	})
}
