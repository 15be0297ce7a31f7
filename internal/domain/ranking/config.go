package ranking

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/questx-lab/questboard/internal/entity"
	"github.com/questx-lab/questboard/pkg/errorx"
)

type Filters struct {
	MinLevel         *int     `mapstructure:"min_level" json:"min_level,omitempty"`
	CharacterClasses []string `mapstructure:"character_classes" json:"character_classes,omitempty"`
	MinActivity      *float64 `mapstructure:"min_activity" json:"min_activity,omitempty"`
}

// Config is the validated form of a stored leaderboard. Fields are checked in
// declaration order and the first failing one is reported.
type Config struct {
	ID             string                      `json:"id"`
	Category       entity.LeaderboardCategory  `json:"category" validate:"oneof=overall referrals commission engagement quests retention"`
	Timeframe      entity.LeaderboardTimeframe `json:"timeframe" validate:"oneof=daily weekly monthly all_time"`
	OrganizationID string                      `json:"organization_id" validate:"required,uuid"`
	Weights        map[string]float64          `json:"weights"`
	Filters        Filters                     `json:"filters"`
	MaxEntries     int                         `json:"max_entries" validate:"gte=0"`
	Enabled        bool                        `json:"enabled"`
}

func newValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	return validate
}

func validateConfig(validate *validator.Validate, cfg Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		return errorx.New(errorx.BadRequest, "Invalid %s", validationErrs[0].Field())
	}

	return errorx.New(errorx.BadRequest, "Invalid leaderboard config")
}

// ConfigFromEntity decodes the weights and filters stored with a leaderboard.
func ConfigFromEntity(leaderboard *entity.Leaderboard) (Config, error) {
	cfg := Config{
		ID:             leaderboard.ID,
		Category:       leaderboard.Category,
		Timeframe:      leaderboard.Timeframe,
		OrganizationID: leaderboard.OrganizationID,
		MaxEntries:     leaderboard.MaxEntries,
		Enabled:        leaderboard.Enabled,
	}

	if len(leaderboard.Weights) > 0 {
		if err := decode(leaderboard.Weights, &cfg.Weights); err != nil {
			return Config{}, errorx.New(errorx.BadRequest, "Invalid weights")
		}
	}

	if len(leaderboard.Filters) > 0 {
		if err := decode(leaderboard.Filters, &cfg.Filters); err != nil {
			return Config{}, errorx.New(errorx.BadRequest, "Invalid filters")
		}
	}

	return cfg, nil
}

func decode(input map[string]any, output any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           output,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(input)
}
