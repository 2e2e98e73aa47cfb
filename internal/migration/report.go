package migration

import "fmt"

// Report — счётчики успешно перенесённых записей по этапам.
// Это внешне наблюдаемый результат прогона: по нему судят об успехе.
type Report struct {
	Categories     int
	Specialties    int
	Providers      int
	CategoryLinks  int
	SpecialtyLinks int
	Contacts       int
	Locations      int
	Services       int
	Photos         int
	Events         int
	Coupons        int
	Reviews        int

	// Сколько из Locations синтезировано из адресов листингов.
	FallbackLocations int
}

const reportRule = "═══════════════════════════════════════════"

// Print выводит итоговый отчёт по всем двенадцати счётчикам.
func (r *Report) Print() {
	fmt.Println()
	fmt.Println(reportRule)
	fmt.Println("  Migration complete!")
	fmt.Println(reportRule)
	fmt.Printf("  Categories:           %d\n", r.Categories)
	fmt.Printf("  Specialties:          %d\n", r.Specialties)
	fmt.Printf("  Providers:            %d\n", r.Providers)
	fmt.Printf("  Provider-Categories:  %d\n", r.CategoryLinks)
	fmt.Printf("  Provider-Specialties: %d\n", r.SpecialtyLinks)
	fmt.Printf("  Contacts:             %d\n", r.Contacts)
	fmt.Printf("  Locations:            %d\n", r.Locations)
	fmt.Printf("  Services:             %d\n", r.Services)
	fmt.Printf("  Photos:               %d\n", r.Photos)
	fmt.Printf("  Events:               %d\n", r.Events)
	fmt.Printf("  Coupons:              %d\n", r.Coupons)
	fmt.Printf("  Reviews:              %d\n", r.Reviews)
	fmt.Println(reportRule)
	fmt.Println()
}
