package http

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/geststock/internal/application/dto"
	"github.com/jhoicas/geststock/internal/application/state"
	"github.com/jhoicas/geststock/internal/application/transcode"
	"github.com/jhoicas/geststock/internal/domain"
)

// TransferHandler maneja las descargas de export y la subida de import.
type TransferHandler struct {
	store *state.Store
	svc   *transcode.Service
}

// NewTransferHandler construye el handler.
func NewTransferHandler(store *state.Store, svc *transcode.Service) *TransferHandler {
	return &TransferHandler{store: store, svc: svc}
}

// ExportCSV descarga la tabla de productos. Sin productos no hay archivo.
func (h *TransferHandler) ExportCSV(c *fiber.Ctx) error {
	if len(h.store.ListProducts()) == 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "EMPTY", Message: "Aucun produit à exporter"})
	}
	out, err := h.svc.ExportTabular()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	name := transcode.TabularFilename(time.Now())
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Send(out)
}

// ExportJSON descarga el respaldo completo enriquecido.
func (h *TransferHandler) ExportJSON(c *fiber.Ctx) error {
	out, err := h.svc.ExportStructured()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	name := transcode.StructuredFilename(time.Now())
	c.Set(fiber.HeaderContentType, "application/json; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Send(out)
}

// Import acepta el respaldo como archivo multipart ("file") o como cuerpo
// JSON crudo, y reemplaza el estado entero. Con archivo inválido el estado
// vigente no se toca.
func (h *TransferHandler) Import(c *fiber.Ctx) error {
	data, err := h.importBody(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "Erreur lors de la lecture du fichier"})
	}
	if err := h.svc.ImportStructured(data); err != nil {
		if errors.Is(err, domain.ErrInvalidImport) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_IMPORT", Message: "Fichier JSON invalide"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Import JSON réussi !"})
}

func (h *TransferHandler) importBody(c *fiber.Ctx) ([]byte, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		// Sin multipart: el cuerpo crudo es el archivo.
		return c.Body(), nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
