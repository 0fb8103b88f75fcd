package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/v2/bson"
)

var (
	ErrValidation      = errors.New("validation failed")
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateStruct runs the dto `validate:` tags and folds every failed field
// into one ErrValidation.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	parts := make([]string, 0, len(ves))
	for _, fe := range ves {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fe.Field()+" is required")
		case "oneof":
			parts = append(parts, fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param()))
		case "max":
			parts = append(parts, fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()))
		default:
			parts = append(parts, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(parts, "; "))
}

// parseID treats a malformed hex id like an unknown one.
func parseID(hex, what string) (bson.ObjectID, error) {
	id, err := bson.ObjectIDFromHex(strings.TrimSpace(hex))
	if err != nil {
		return bson.NilObjectID, fmt.Errorf("%s %w", what, ErrNotFound)
	}
	return id, nil
}

const maxEmojiBytes = 64

// checkEmoji keeps reaction keys usable as document field names.
func checkEmoji(emoji string) error {
	switch {
	case strings.TrimSpace(emoji) == "":
		return fmt.Errorf("%w: emoji is required", ErrValidation)
	case len(emoji) > maxEmojiBytes:
		return fmt.Errorf("%w: emoji too long", ErrValidation)
	case strings.Contains(emoji, "."), strings.HasPrefix(emoji, "$"):
		return fmt.Errorf("%w: emoji may not contain '.' or start with '$'", ErrValidation)
	}
	return nil
}
