package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"inventory/internal/validation"
	pkgerrors "inventory/pkg/errors"
	"inventory/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// Client-facing messages for malformed requests.
const (
	msgInvalidID   = "ID must be a number"
	msgInvalidBody = "Invalid request body"
)

var (
	errInvalidID   = errors.New("invalid id parameter")
	errInvalidBody = errors.New("invalid request body")
)

// parseID reads the :id route parameter as an integer.
func parseID(c *fiber.Ctx) (int64, error) {
	id, err := c.ParamsInt("id")
	if err != nil {
		return 0, errInvalidID
	}
	return int64(id), nil
}

// decodeBody parses the request body as a single JSON object, keeping
// numbers as json.Number so validation can tell 20 from 20.5. An empty body
// is an empty object.
func decodeBody(c *fiber.Ctx) (validation.Payload, error) {
	body := c.Body()
	if len(bytes.TrimSpace(body)) == 0 {
		return validation.Payload{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var payload validation.Payload
	if err := dec.Decode(&payload); err != nil || payload == nil {
		return nil, errInvalidBody
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, errInvalidBody
	}
	return payload, nil
}

func badRequest(c *fiber.Ctx, err error) error {
	msg := msgInvalidBody
	if errors.Is(err, errInvalidID) {
		msg = msgInvalidID
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": msg,
	})
}

// respondError maps a service error onto the HTTP response. Internal
// faults are logged with their full chain and answered with fallback.
func respondError(c *fiber.Ctx, log *logger.Logger, err error, fallback string) error {
	typed := pkgerrors.As(err)
	code := pkgerrors.CodeOf(err)
	meta := pkgerrors.MetadataFor(code)

	switch code {
	case pkgerrors.CodeValidation:
		if details, ok := typed.Details().([]string); ok && meta.DetailsAllowed && len(details) > 0 {
			return c.Status(meta.HTTPStatus).JSON(fiber.Map{
				"errors": details,
			})
		}
		return c.Status(meta.HTTPStatus).JSON(fiber.Map{
			"error": typed.Message(),
		})
	case pkgerrors.CodeNotFound, pkgerrors.CodeConflict:
		return c.Status(meta.HTTPStatus).JSON(fiber.Map{
			"error": typed.Message(),
		})
	}

	ctx := log.WithFields(c.UserContext(), pkgerrors.Dump(err).Fields())
	log.Error(ctx, fallback, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": fallback,
	})
}
