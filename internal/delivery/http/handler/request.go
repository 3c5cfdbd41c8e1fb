package handler

import (
	"errors"
	"strconv"
	"strings"

	"career-ready/internal/delivery/http/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func currentUser(c fiber.Ctx) (uuid.UUID, error) {
	userID, ok := middleware.UserID(c)
	if !ok {
		return uuid.Nil, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return userID, nil
}

func uuidParam(c fiber.Ctx, key string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(key))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid "+key, nil, err)
	}
	return id, nil
}

// bindBody decodes the JSON body into req and runs its validate tags.
func bindBody(c fiber.Ctx, req any) error {
	if err := c.Bind().Body(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
		}
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[jsonFieldName(fe.Field())] = fe.Tag()
		}
		return middleware.NewAppError(fiber.StatusBadRequest, "Validation failed", fields, err)
	}
	return nil
}

func jsonFieldName(field string) string {
	var b strings.Builder
	for i, r := range field {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

func parseQueryIntStrict(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := c.Query(key)
	if s == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0, middleware.NewAppError(fiber.StatusBadRequest, "Invalid "+key, nil, err)
	}
	return v, nil
}

func parseQueryBool(c fiber.Ctx, key string) (bool, error) {
	s := strings.TrimSpace(c.Query(key))
	if s == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, middleware.NewAppError(fiber.StatusBadRequest, "Invalid "+key, nil, err)
	}
	return v, nil
}
