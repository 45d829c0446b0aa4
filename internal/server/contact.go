package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type contactFormData struct {
	Form   contact.Form
	Errors contact.ValidationErrors
}

func (s *Server) contactForm(c *gin.Context) {
	c.HTML(http.StatusOK, "contact-form", contactFormData{})
}

// submitContact answers HTMX posts with HTML fragments and JSON posts with
// JSON. Validation failures re-render the form with per-field messages.
func (s *Server) submitContact(c *gin.Context) {
	wantsJSON := c.ContentType() == binding.MIMEJSON

	var form contact.Form
	if err := c.ShouldBind(&form); err != nil {
		if wantsJSON {
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request"})
			return
		}
		c.HTML(http.StatusBadRequest, "contact-error", gin.H{
			"error": "Sorry, that request could not be read.",
		})
		return
	}

	receipt, err := s.submitter.Submit(c.Request.Context(), form)
	var verrs contact.ValidationErrors
	switch {
	case err == nil:
	case errors.As(err, &verrs):
		if wantsJSON {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": verrs})
			return
		}
		c.HTML(http.StatusOK, "contact-form", contactFormData{Form: form, Errors: verrs})
		return
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		c.Abort()
		return
	default:
		s.log.WithError(err).Error("Contact submission failed")
		if wantsJSON {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "submission failed"})
			return
		}
		c.HTML(http.StatusOK, "contact-error", gin.H{
			"error": "Sorry, there was an error sending your message. Please try again later.",
		})
		return
	}

	if wantsJSON {
		c.JSON(http.StatusOK, receipt)
		return
	}
	c.HTML(http.StatusOK, "contact-success", gin.H{
		"success": "Thank you for your message! I'll get back to you soon.",
		"name":    receipt.Name,
	})
}
