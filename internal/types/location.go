package types

import (
	"bytes"
	"encoding/json"
)

// LocationPayload is the body served by /dados as a map consumer sees it.
// A nil field was absent from the JSON document or null; CidadeNull tells the
// two apart for the city, since a browser prints them differently.
type LocationPayload struct {
	Coordenadas *string `json:"coordenadas"`
	Cidade      *string `json:"cidade"`
	CidadeNull  bool    `json:"-"`
}

func (p *LocationPayload) UnmarshalJSON(data []byte) error {
	type plain LocationPayload
	var raw struct {
		plain
		Cidade json.RawMessage `json:"cidade"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*p = LocationPayload(raw.plain)
	p.Cidade = nil
	switch {
	case raw.Cidade == nil:
	case bytes.Equal(raw.Cidade, []byte("null")):
		p.CidadeNull = true
	default:
		var cidade string
		if err := json.Unmarshal(raw.Cidade, &cidade); err != nil {
			return err
		}
		p.Cidade = &cidade
	}
	return nil
}

// Location is the record produced by the locate pipeline and persisted for /dados
type Location struct {
	Cidade      string `json:"cidade" example:"São Paulo"`
	Coordenadas string `json:"coordenadas" example:"-23.5475,-46.6361"`
	NomePC      string `json:"nome_pc" example:"Computador Teste 1"`
	Estado      string `json:"estado,omitempty" example:"São Paulo"`
	Pais        string `json:"pais,omitempty" example:"BR"`
	FusoHorario string `json:"fuso_horario,omitempty" example:"America/Sao_Paulo"`
}

// Payload returns the fields of the record a map consumer reads
func (l Location) Payload() LocationPayload {
	coordenadas := l.Coordenadas
	cidade := l.Cidade
	return LocationPayload{
		Coordenadas: &coordenadas,
		Cidade:      &cidade,
	}
}
