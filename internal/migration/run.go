package migration

import (
	"errors"
	"fmt"
	"log/slog"

	gomysql "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"github.com/rubhub/provider-directory/internal/model"
)

// mapKind — какие remap-таблицы (легаси-id → новый id) этап читает
// и какие заполняет. Порядок этапов проверяется по этим объявлениям,
// а не по положению в списке.
type mapKind int

const (
	mapCategories mapKind = iota
	mapSpecialties
	mapProviders
)

var mapNames = map[mapKind]string{
	mapCategories:  "categories",
	mapSpecialties: "specialties",
	mapProviders:   "providers",
}

// stage — один нумерованный этап миграции.
type stage struct {
	num      int
	name     string
	needs    []mapKind
	produces []mapKind
	run      func(*RunContext) error
}

// fallbackAddr — адресные поля самого листинга, отложенные на этапе
// провайдеров для второго прохода по локациям.
type fallbackAddr struct {
	providerID uint
	address1   string
	address2   string
	city       string
	stateID    int64
	countryID  int64
	zip        string
}

// RunContext — всё состояние одного прогона миграции, явно передаваемое
// из этапа в этап: remap-таблицы, справочники, отложенные адреса, счётчики.
// Запись в таблицы — write-once-per-key, конкурентного доступа нет:
// прогон строго однопоточный.
type RunContext struct {
	legacy Reader
	db     *gorm.DB
	log    *slog.Logger

	states    map[int64]string
	countries map[int64]string

	categoryIDs  map[int64]uint
	specialtyIDs map[int64]uint
	providerIDs  map[int64]uint

	providersWithLocation map[uint]struct{}
	fallbackAddrs         []fallbackAddr

	report Report
}

func (c *RunContext) state(id int64) string {
	return c.states[id]
}

func (c *RunContext) country(id int64) string {
	if v, ok := c.countries[id]; ok && v != "" {
		return v
	}
	return "US"
}

// isDuplicate отделяет нарушение уникальности от прочих ошибок стора,
// чтобы молча пропускать только настоящие дубликаты.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *gomysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == 1062
}

// stages возвращает этапы в порядке исполнения. Зависимости между
// этапами объявлены явно через needs/produces.
func stages() []stage {
	return []stage{
		{1, "Migrating categories", nil, []mapKind{mapCategories}, migrateCategories},
		{2, "Migrating specialties", nil, []mapKind{mapSpecialties}, migrateSpecialties},
		{3, "Migrating providers (and users where applicable)", nil, []mapKind{mapProviders}, migrateProviders},
		{4, "Migrating provider-category links", []mapKind{mapProviders, mapCategories}, nil, migrateCategoryLinks},
		{5, "Migrating provider-specialty links", []mapKind{mapProviders, mapSpecialties}, nil, migrateSpecialtyLinks},
		{6, "Migrating contacts", []mapKind{mapProviders}, nil, migrateContacts},
		{7, "Migrating locations", []mapKind{mapProviders}, nil, migrateLocations},
		{8, "Migrating services", []mapKind{mapProviders}, nil, migrateServices},
		{9, "Migrating photos", []mapKind{mapProviders}, nil, migratePhotos},
		{10, "Migrating events", []mapKind{mapProviders}, nil, migrateEvents},
		{11, "Migrating coupons", []mapKind{mapProviders}, nil, migrateCoupons},
		{12, "Migrating reviews", []mapKind{mapProviders}, nil, migrateReviews},
	}
}

// Run выполняет полный прогон: очистка целевой базы, загрузка справочников,
// затем 12 этапов строго по порядку. Ошибки уровня строки этапы гасят сами;
// сюда доходят только ошибки соединений и чтения легаси — они фатальны.
func Run(legacy Reader, db *gorm.DB, log *slog.Logger) (*Report, error) {
	if log == nil {
		log = slog.Default()
	}

	ctx := &RunContext{
		legacy:                legacy,
		db:                    db,
		log:                   log,
		categoryIDs:           make(map[int64]uint),
		specialtyIDs:          make(map[int64]uint),
		providerIDs:           make(map[int64]uint),
		providersWithLocation: make(map[uint]struct{}),
	}

	fmt.Println("Clearing existing data...")
	if err := wipeTarget(db, log); err != nil {
		return nil, fmt.Errorf("wipe target store: %w", err)
	}

	if err := ctx.loadLookups(); err != nil {
		return nil, fmt.Errorf("build lookup maps: %w", err)
	}

	produced := map[mapKind]bool{}
	for _, st := range stages() {
		for _, m := range st.needs {
			if !produced[m] {
				return nil, fmt.Errorf("stage %d (%s): required map %q not built yet", st.num, st.name, mapNames[m])
			}
		}

		fmt.Printf("\n%d. %s...\n", st.num, st.name)
		if err := st.run(ctx); err != nil {
			return nil, fmt.Errorf("stage %d (%s): %w", st.num, st.name, err)
		}

		for _, m := range st.produces {
			produced[m] = true
		}
	}

	ctx.report.Print()
	return &ctx.report, nil
}

// wipeTarget удаляет все строки целевых таблиц в обратном порядке
// зависимостей. Проверка внешних ключей отключается на время удаления
// и гарантированно включается обратно через defer, даже если удаление
// оборвалось.
func wipeTarget(db *gorm.DB, log *slog.Logger) error {
	if db.Dialector.Name() == "mysql" {
		if err := db.Exec("SET FOREIGN_KEY_CHECKS = 0").Error; err != nil {
			return fmt.Errorf("disable foreign key checks: %w", err)
		}
		defer func() {
			if err := db.Exec("SET FOREIGN_KEY_CHECKS = 1").Error; err != nil {
				log.Error("re-enable foreign key checks failed", "error", err)
			}
		}()
	}

	order := []any{
		&model.ProviderCategory{},
		&model.ProviderSpecialty{},
		&model.Review{},
		&model.Coupon{},
		&model.Event{},
		&model.Photo{},
		&model.Service{},
		&model.Location{},
		&model.Contact{},
		&model.Provider{},
		&model.User{},
		&model.Category{},
		&model.Specialty{},
	}
	for _, m := range order {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
			return fmt.Errorf("delete %T: %w", m, err)
		}
	}
	return nil
}

// loadLookups грузит справочники state и country в память целиком.
// Дальше по ходу прогона они только читаются.
func (c *RunContext) loadLookups() error {
	states, err := c.legacy.States()
	if err != nil {
		return err
	}
	c.states = make(map[int64]string, len(states))
	for _, s := range states {
		c.states[s.ID] = s.ShortName
	}

	countries, err := c.legacy.Countries()
	if err != nil {
		return err
	}
	c.countries = make(map[int64]string, len(countries))
	for _, cn := range countries {
		c.countries[cn.ID] = cn.ShortName
	}
	return nil
}
