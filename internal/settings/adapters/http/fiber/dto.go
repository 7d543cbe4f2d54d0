package fiber

import (
	"time"

	"route-analytics-service/internal/settings/core/domain"
)

// SettingRequest represents a saved chart configuration
// @Description Chart setting. Range bounds are optional and must lie in the past.
type SettingRequest struct {
	Name      string           `json:"name" example:"Lufthansa monthly"`
	Creator   string           `json:"creator" example:"rene"`
	Shareable bool             `json:"shareable"`
	RangeFrom string           `json:"rangeFrom,omitempty" example:"2014-01-01"`
	RangeTo   string           `json:"rangeTo,omitempty" example:"2015-01-01"`
	Axis      SettingAxisDTO   `json:"axis"`
	Filter    SettingFilterDTO `json:"filter"`
}

type SettingAxisDTO struct {
	X string `json:"x" example:"TIME"`
	Y string `json:"y" example:"FLIGHTS"`
}

type SettingFilterDTO struct {
	Timestep     string   `json:"timestep" example:"MONTH"`
	Airlines     []string `json:"airlines"`
	Origins      []string `json:"origins"`
	Destinations []string `json:"destinations"`
}

type SettingResponse struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Creator   string           `json:"creator"`
	Shareable bool             `json:"shareable"`
	RangeFrom *string          `json:"rangeFrom"`
	RangeTo   *string          `json:"rangeTo"`
	Axis      SettingAxisDTO   `json:"axis"`
	Filter    SettingFilterDTO `json:"filter"`
}

type SettingsResponse struct {
	Count    int               `json:"count"`
	Settings []SettingResponse `json:"settings"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_setting"`
	Message string `json:"message" example:"name must have at least 3 characters"`
}

func toSettingResponse(s domain.Setting) SettingResponse {
	return SettingResponse{
		ID:        s.ID.String(),
		Name:      s.Name,
		Creator:   s.Creator,
		Shareable: s.Shareable,
		RangeFrom: formatTime(s.RangeFrom),
		RangeTo:   formatTime(s.RangeTo),
		Axis:      SettingAxisDTO{X: s.AxisX, Y: s.AxisY},
		Filter: SettingFilterDTO{
			Timestep:     s.Granularity,
			Airlines:     nonNil(s.Airlines),
			Origins:      nonNil(s.Origins),
			Destinations: nonNil(s.Destinations),
		},
	}
}

func toSettingsResponse(settings []domain.Setting) SettingsResponse {
	resp := SettingsResponse{Count: len(settings), Settings: make([]SettingResponse, len(settings))}
	for i, s := range settings {
		resp.Settings[i] = toSettingResponse(s)
	}
	return resp
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
