package pdi

// ValidItem reports whether a single plan item is complete: the four
// descriptive fields filled in, a status code between "1" and "5" and a
// recognized term bucket.
func ValidItem(item Item) bool {
	if item.Competencia == "" || item.ResultadosEsperados == "" ||
		item.ComoDesenvolver == "" || item.Calendarizacao == "" {
		return false
	}
	switch item.Status {
	case "1", "2", "3", "4", "5":
	default:
		return false
	}
	return validPrazo(item.Prazo)
}

// ValidateItems accepts a non-empty list where every item passes ValidItem.
// The trailing check that at least one item carries a recognized prazo is
// redundant with the per-item check but kept as an explicit guard.
func ValidateItems(items []Item) bool {
	if len(items) == 0 {
		return false
	}
	for _, item := range items {
		if !ValidItem(item) {
			return false
		}
	}
	for _, item := range items {
		if validPrazo(item.Prazo) {
			return true
		}
	}
	return false
}

func validPrazo(prazo string) bool {
	switch prazo {
	case PrazoCurto, PrazoMedio, PrazoLongo:
		return true
	}
	return false
}
