package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-backoffice/internal/audit"
	"github.com/BruksfildServices01/salon-backoffice/internal/httperr"
	"github.com/BruksfildServices01/salon-backoffice/internal/middleware"
)

func actorFrom(c *gin.Context) audit.Actor {
	p := middleware.Profile(c)
	return audit.Actor{
		UserID:    p.AuthID,
		CompanyID: p.CompanyID,
	}
}

// unknownAs reports a parent outside the caller's scope as an invalid
// reference on field.
func unknownAs(err error, field, reason string) error {
	if httperr.IsNotFound(err) {
		return httperr.Validation(field, reason)
	}
	return err
}
