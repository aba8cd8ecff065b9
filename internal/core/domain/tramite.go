package domain

// Tramite column names, in CSV order. Name and category share the
// institution column names.
const (
	ColTramiteID    = "tramite_id"
	ColDescription  = "descripcion"
	ColCost         = "costo"
	ColResponseTime = "tiempo_respuesta"
	ColStatus       = "estado"
	ColUpdatedAt    = "updated_at"
)

// Tramite is an administrative procedure built from its detail endpoint.
type Tramite struct {
	ID            string
	Name          string
	Description   string
	Cost          string
	ResponseTime  string
	Category      string
	Status        string
	UpdatedAt     string
	InstitutionID string
}

// TramiteFromDetail projects a detail payload. The owning institution
// comes from the nested "institucion.id" field.
func TramiteFromDetail(id string, det Item) Tramite {
	return Tramite{
		ID:            id,
		Name:          det.String("nombre"),
		Description:   det.String("descripcion"),
		Cost:          det.String("costo"),
		ResponseTime:  det.String("tiempo_respuesta"),
		Category:      det.String("categoria"),
		Status:        det.String("estado"),
		UpdatedAt:     det.String("updated_at"),
		InstitutionID: det.Object("institucion").String("id"),
	}
}

// Record returns the tramite as an ordered row.
func (t Tramite) Record() Record {
	return Record{
		{ColTramiteID, t.ID},
		{ColName, t.Name},
		{ColDescription, t.Description},
		{ColCost, t.Cost},
		{ColResponseTime, t.ResponseTime},
		{ColCategory, t.Category},
		{ColStatus, t.Status},
		{ColUpdatedAt, t.UpdatedAt},
		{ColInstitutionID, t.InstitutionID},
	}
}

// TramiteRecords converts tramites to rows, preserving order.
func TramiteRecords(list []Tramite) []Record {
	out := make([]Record, len(list))
	for i := range list {
		out[i] = list[i].Record()
	}
	return out
}

// DetailStatus classifies the outcome of a detail fetch.
type DetailStatus int

const (
	// DetailFound means the detail was fetched and decoded.
	DetailFound DetailStatus = iota

	// DetailNotFound means the API answered 404.
	DetailNotFound

	// DetailTransportError covers every other failure: network, non-2xx
	// status, undecodable or non-object body.
	DetailTransportError
)

// String returns a short label for logs.
func (s DetailStatus) String() string {
	switch s {
	case DetailFound:
		return "found"
	case DetailNotFound:
		return "not-found"
	default:
		return "transport-error"
	}
}

// DetailResult is the outcome of fetching one tramite detail.
type DetailResult struct {
	Status  DetailStatus
	Tramite Tramite
	Err     error
}

// OK reports whether a detail is available.
func (r DetailResult) OK() bool {
	return r.Status == DetailFound
}
