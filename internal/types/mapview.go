package types

// MapView describes one Leaflet map: where it mounts, what it centers on and what it draws
type MapView struct {
	Container string     `json:"container" example:"map"`
	Center    [2]float64 `json:"center"`
	Zoom      int        `json:"zoom" example:"13"`
	TileLayer TileLayer  `json:"tileLayer"`
	Markers   []Marker   `json:"markers"`
}

// TileLayer is a raster tile source addressed by {s}, {z}, {x} and {y}
type TileLayer struct {
	URLTemplate string `json:"urlTemplate" example:"https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"`
	MaxZoom     int    `json:"maxZoom" example:"18"`
	Attribution string `json:"attribution"`
}

// Marker is a point annotation with an optional HTML popup
type Marker struct {
	Position  [2]float64 `json:"position"`
	Popup     string     `json:"popup,omitempty"`
	PopupOpen bool       `json:"popupOpen"`
}
