package domain

// Institution column names, in CSV order.
const (
	ColInstitutionID = "institucion_id"
	ColName          = "nombre"
	ColProvince      = "provincia"
	ColCanton        = "canton"
	ColParish        = "parroquia"
	ColAddress       = "direccion"
	ColPhone         = "telefono"
	ColEmail         = "email"
	ColCategory      = "categoria"
	ColWebsite       = "website"
	ColBusinessHours = "horario_atencion"
)

// Institution is a public institution as listed by the gob.ec API.
type Institution struct {
	ID            string
	Name          string
	Province      string
	Canton        string
	Parish        string
	Address       string
	Phone         string
	Email         string
	Category      string
	Website       string
	BusinessHours string
}

// InstitutionFromItem projects one institutions page item.
// The identifier is "institucion_id", falling back to "id".
func InstitutionFromItem(it Item) Institution {
	return Institution{
		ID:            it.First("institucion_id", "id"),
		Name:          it.String("nombre"),
		Province:      it.String("provincia"),
		Canton:        it.String("canton"),
		Parish:        it.String("parroquia"),
		Address:       it.String("direccion"),
		Phone:         it.String("telefono"),
		Email:         it.String("email"),
		Category:      it.String("categoria"),
		Website:       it.String("website"),
		BusinessHours: it.String("horario_atencion"),
	}
}

// Record returns the institution as an ordered row.
func (i Institution) Record() Record {
	return Record{
		{ColInstitutionID, i.ID},
		{ColName, i.Name},
		{ColProvince, i.Province},
		{ColCanton, i.Canton},
		{ColParish, i.Parish},
		{ColAddress, i.Address},
		{ColPhone, i.Phone},
		{ColEmail, i.Email},
		{ColCategory, i.Category},
		{ColWebsite, i.Website},
		{ColBusinessHours, i.BusinessHours},
	}
}

// InstitutionRecords converts institutions to rows, preserving order.
func InstitutionRecords(list []Institution) []Record {
	out := make([]Record, len(list))
	for i := range list {
		out[i] = list[i].Record()
	}
	return out
}
