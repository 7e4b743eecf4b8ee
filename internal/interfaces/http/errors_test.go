package http

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/exesman-api/internal/application/dto"
	"github.com/jhoicas/exesman-api/internal/domain"
)

func TestRespondError_MapeoDeErroresDeDominio(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"recurso ausente", domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
		{"usuario ausente", domain.ErrUserNotFound, fiber.StatusNotFound, "NOT_FOUND"},
		{"fuera de alcance", domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
		{"credenciales", domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
		{"nombre duplicado es 400", domain.ErrDuplicate, fiber.StatusBadRequest, "DUPLICATE"},
		{"email registrado", domain.ErrEmailAlreadyExists, fiber.StatusBadRequest, "EMAIL_EXISTS"},
		{"transición ilegal", domain.ErrInvalidState, fiber.StatusBadRequest, "INVALID_STATE"},
		{"auto-eliminación", domain.ErrSelfDeletion, fiber.StatusBadRequest, "SELF_DELETION"},
		{"entrada inválida", domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
		{"error no clasificado", io.ErrUnexpectedEOF, fiber.StatusInternalServerError, "INTERNAL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/x", func(c *fiber.Ctx) error {
				return respondError(c, tt.err)
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/x", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			raw, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			var body dto.ErrorResponse
			require.NoError(t, json.Unmarshal(raw, &body))
			assert.Equal(t, tt.wantCode, body.Code)
		})
	}
}
