package pdi

import "testing"

func wellFormedItem() Item {
	return Item{
		Competencia:         "Comunicação",
		ResultadosEsperados: "Apresentações mais claras",
		ComoDesenvolver:     "Curso de oratória",
		Calendarizacao:      "2026-Q4",
		Status:              "1",
		Prazo:               PrazoCurto,
	}
}

func TestValidateItemsAcceptsWellFormedItem(t *testing.T) {
	if !ValidateItems([]Item{wellFormedItem()}) {
		t.Fatal("well-formed single item rejected")
	}
}

func TestValidateItemsRejectsEmptyList(t *testing.T) {
	if ValidateItems(nil) {
		t.Fatal("empty list accepted")
	}
}

func TestValidateItemsRejectsBadStatus(t *testing.T) {
	item := wellFormedItem()
	item.Status = "6"
	if ValidateItems([]Item{wellFormedItem(), item}) {
		t.Fatal("list with status 6 accepted")
	}
}

func TestValidateItemsRejectsBadPrazo(t *testing.T) {
	item := wellFormedItem()
	item.Prazo = "anual"
	if ValidateItems([]Item{item}) {
		t.Fatal("prazo anual accepted")
	}
}

func TestValidItemRequiresDescriptiveFields(t *testing.T) {
	mutations := []func(*Item){
		func(i *Item) { i.Competencia = "" },
		func(i *Item) { i.ResultadosEsperados = "" },
		func(i *Item) { i.ComoDesenvolver = "" },
		func(i *Item) { i.Calendarizacao = "" },
	}
	for n, mutate := range mutations {
		item := wellFormedItem()
		mutate(&item)
		if ValidItem(item) {
			t.Fatalf("mutation %d: item with empty field accepted", n)
		}
	}
}

func TestValidItemAllPrazos(t *testing.T) {
	for _, prazo := range []string{PrazoCurto, PrazoMedio, PrazoLongo} {
		item := wellFormedItem()
		item.Prazo = prazo
		if !ValidItem(item) {
			t.Fatalf("prazo %q rejected", prazo)
		}
	}
}
