package mapview

import (
	"fmt"
	"html"

	"location-map/internal/types"
)

// What a browser prints when interpolating an absent or null JSON property
const (
	missingField = "undefined"
	nullField    = "null"
)

// PopupContent formats the marker popup: the city in bold, then the raw coordinate string
func PopupContent(cidade *string, coordenadas string) string {
	name := missingField
	if cidade != nil {
		name = *cidade
	}
	return fmt.Sprintf("<b>%s</b><br>Coordenadas: %s", html.EscapeString(name), html.EscapeString(coordenadas))
}

// payloadCidade is the city as the popup shows it, with an explicit null kept apart from absence
func payloadCidade(payload *types.LocationPayload) *string {
	if payload.Cidade == nil && payload.CidadeNull {
		name := nullField
		return &name
	}
	return payload.Cidade
}
