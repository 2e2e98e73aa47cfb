package migration

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/rubhub/provider-directory/internal/model"
)

// Общая семантика этапов: неразрешённый внешний ключ и невалидные
// обязательные поля — молчаливый пропуск (легаси-целостность заведомо
// дырявая); дубликат — пропуск с warn для сущностей и молча для junction'ов;
// любая другая ошибка вставки логируется с контекстом строки и не
// останавливает этап.

func migrateCategories(ctx *RunContext) error {
	rows, err := ctx.legacy.Categories()
	if err != nil {
		return err
	}

	slugs := NewSlugSet("category")
	for _, row := range rows {
		cat := model.Category{
			Name: strings.TrimSpace(row.Name),
			Slug: slugs.Claim(row.Name, row.ID),
		}
		if err := ctx.db.Create(&cat).Error; err != nil {
			if isDuplicate(err) {
				ctx.log.Warn("skipped duplicate category", "name", row.Name, "legacy_id", row.ID)
			} else {
				ctx.log.Error("create category failed", "name", row.Name, "legacy_id", row.ID, "error", err)
			}
			continue
		}
		ctx.categoryIDs[row.ID] = cat.ID
	}

	ctx.report.Categories = len(ctx.categoryIDs)
	fmt.Printf("  Migrated %d categories\n", ctx.report.Categories)
	return nil
}

func migrateSpecialties(ctx *RunContext) error {
	rows, err := ctx.legacy.Specialties()
	if err != nil {
		return err
	}

	slugs := NewSlugSet("specialty")
	for _, row := range rows {
		spec := model.Specialty{
			Name: strings.TrimSpace(row.Name),
			Slug: slugs.Claim(row.Name, row.ID),
		}
		if err := ctx.db.Create(&spec).Error; err != nil {
			if isDuplicate(err) {
				ctx.log.Warn("skipped duplicate specialty", "name", row.Name, "legacy_id", row.ID)
			} else {
				ctx.log.Error("create specialty failed", "name", row.Name, "legacy_id", row.ID, "error", err)
			}
			continue
		}
		ctx.specialtyIDs[row.ID] = spec.ID
	}

	ctx.report.Specialties = len(ctx.specialtyIDs)
	fmt.Printf("  Migrated %d specialties\n", ctx.report.Specialties)
	return nil
}

func migrateProviders(ctx *RunContext) error {
	rows, err := ctx.legacy.Listings()
	if err != nil {
		return err
	}

	slugs := NewSlugSet("provider")
	now := time.Now().UTC()

	for _, row := range rows {
		// Слаг: короткий URL, иначе имя, иначе синтетика provider-<id>.
		slugSource := row.ShortURLString
		if Slugify(slugSource) == "" {
			slugSource = row.Name
		}
		slug := slugs.Claim(slugSource, row.ID)

		name := strings.TrimSpace(row.Name)
		if name == "" {
			name = "Unknown Provider"
		}

		// Пользователь создаётся только при непустом email.
		// На конфликте уникальности email побеждает первый листинг:
		// второй провайдер к тому же пользователю не привязывается.
		var userID *uint
		email := strings.TrimSpace(row.Email)
		if email != "" {
			userID = ctx.claimUser(email, row)
		}

		createdAt := DateOr(row.Created, now)
		updatedAt := DateOr(row.Updated, createdAt)

		provider := model.Provider{
			Slug:      slug,
			Name:      name,
			Bio:       StripHTML(row.HTMLData),
			Status:    model.ProviderStatusActive,
			UserID:    userID,
			CreatedAt: createdAt,
			UpdatedAt: updatedAt,
		}
		if err := ctx.db.Create(&provider).Error; err != nil {
			if isDuplicate(err) {
				ctx.log.Warn("skipped duplicate provider", "name", row.Name, "legacy_id", row.ID)
			} else {
				ctx.log.Error("create provider failed", "name", row.Name, "legacy_id", row.ID, "error", err)
			}
			continue
		}
		ctx.providerIDs[row.ID] = provider.ID

		// Инлайновый адрес листинга откладываем: он станет локацией,
		// только если этап 7 не найдёт ни одной настоящей.
		if strings.TrimSpace(row.Address1) != "" || strings.TrimSpace(row.City) != "" {
			ctx.fallbackAddrs = append(ctx.fallbackAddrs, fallbackAddr{
				providerID: provider.ID,
				address1:   strings.TrimSpace(row.Address1),
				address2:   strings.TrimSpace(row.Address2),
				city:       strings.TrimSpace(row.City),
				stateID:    row.StateID,
				countryID:  row.CountryID,
				zip:        strings.TrimSpace(row.Zip),
			})
		}
	}

	ctx.report.Providers = len(ctx.providerIDs)
	fmt.Printf("  Migrated %d providers\n", ctx.report.Providers)
	return nil
}

// claimUser создаёт пользователя под email листинга либо, если email уже
// занят, возвращает существующего — но только пока у того нет провайдера.
func (c *RunContext) claimUser(email string, row ListingRow) *uint {
	password := row.Password
	if password == "" {
		password = "no-password"
	}
	firstName := row.Name
	if strings.TrimSpace(firstName) == "" {
		firstName = "Provider"
	}

	user := model.User{
		Email:        email,
		PasswordHash: password,
		FirstName:    firstName,
		LastName:     "",
	}
	err := c.db.Create(&user).Error
	if err == nil {
		return &user.ID
	}
	if !isDuplicate(err) {
		c.log.Error("create user failed", "email", email, "legacy_id", row.ID, "error", err)
		return nil
	}

	var existing model.User
	if err := c.db.Where("email = ?", email).First(&existing).Error; err != nil {
		c.log.Error("lookup existing user failed", "email", email, "legacy_id", row.ID, "error", err)
		return nil
	}

	var linked int64
	if err := c.db.Model(&model.Provider{}).Where("user_id = ?", existing.ID).Count(&linked).Error; err != nil {
		c.log.Error("count linked providers failed", "email", email, "legacy_id", row.ID, "error", err)
		return nil
	}
	if linked > 0 {
		c.log.Warn("user already linked to another provider, skipping link", "email", email, "legacy_id", row.ID)
		return nil
	}
	return &existing.ID
}

func migrateCategoryLinks(ctx *RunContext) error {
	rows, err := ctx.legacy.CategoryLinks()
	if err != nil {
		return err
	}

	count := 0
	for _, row := range rows {
		providerID, ok := ctx.providerIDs[row.ListingID]
		if !ok {
			continue
		}
		categoryID, ok := ctx.categoryIDs[row.TargetID]
		if !ok {
			continue
		}

		link := model.ProviderCategory{ProviderID: providerID, CategoryID: categoryID}
		if err := ctx.db.Create(&link).Error; err != nil {
			// Дубликаты пар здесь ожидаемы и безвредны.
			if !isDuplicate(err) {
				ctx.log.Error("create provider-category link failed",
					"listing_id", row.ListingID, "subcategory_id", row.TargetID, "error", err)
			}
			continue
		}
		count++
	}

	ctx.report.CategoryLinks = count
	fmt.Printf("  Migrated %d provider-category links\n", count)
	return nil
}

func migrateSpecialtyLinks(ctx *RunContext) error {
	rows, err := ctx.legacy.SpecialtyLinks()
	if err != nil {
		return err
	}

	count := 0
	for _, row := range rows {
		providerID, ok := ctx.providerIDs[row.ListingID]
		if !ok {
			continue
		}
		specialtyID, ok := ctx.specialtyIDs[row.TargetID]
		if !ok {
			continue
		}

		link := model.ProviderSpecialty{ProviderID: providerID, SpecialtyID: specialtyID}
		if err := ctx.db.Create(&link).Error; err != nil {
			if !isDuplicate(err) {
				ctx.log.Error("create provider-specialty link failed",
					"listing_id", row.ListingID, "subcategory_id", row.TargetID, "error", err)
			}
			continue
		}
		count++
	}

	ctx.report.SpecialtyLinks = count
	fmt.Printf("  Migrated %d provider-specialty links\n", count)
	return nil
}

func migrateContacts(ctx *RunContext) error {
	rows, err := ctx.legacy.Contacts()
	if err != nil {
		return err
	}

	count := 0
	for _, row := range rows {
		providerID, ok := ctx.providerIDs[row.ListingID]
		if !ok {
			continue
		}

		firstName := strings.TrimSpace(row.FirstName)
		lastName := strings.TrimSpace(row.LastName)
		if firstName == "" && lastName == "" {
			continue
		}
		if firstName == "" {
			firstName = "Unknown"
		}

		// Контакт публичен, только если ни одно из четырёх полей
		// не помечено приватным.
		anyPrivate := YesNo(row.EmailPrivate) ||
			YesNo(row.PhonePrivate) ||
			YesNo(row.FirstNamePrivate) ||
			YesNo(row.LastNamePrivate)

		contact := model.Contact{
			ProviderID: providerID,
			FirstName:  firstName,
			LastName:   lastName,
			Email:      nullIfEmpty(row.Email),
			Phone:      nullIfEmpty(row.Phone),
			IsPublic:   !anyPrivate,
		}
		if err := ctx.db.Create(&contact).Error; err != nil {
			ctx.log.Error("create contact failed", "legacy_id", row.ID, "listing_id", row.ListingID, "error", err)
			continue
		}
		count++
	}

	ctx.report.Contacts = count
	fmt.Printf("  Migrated %d contacts\n", count)
	return nil
}

func migrateLocations(ctx *RunContext) error {
	rows, err := ctx.legacy.Locations()
	if err != nil {
		return err
	}

	count := 0
	for _, row := range rows {
		providerID, ok := ctx.providerIDs[row.ListingID]
		if !ok {
			continue
		}

		address1 := strings.TrimSpace(row.Address1)
		city := strings.TrimSpace(row.City)
		if address1 == "" && city == "" {
			continue
		}

		ctx.providersWithLocation[providerID] = struct{}{}

		loc := model.Location{
			ProviderID: providerID,
			Name:       nullIfEmpty(row.Name),
			Address1:   defaultStr(address1, "No address"),
			Address2:   nullIfEmpty(row.Address2),
			City:       defaultStr(city, "Unknown"),
			State:      defaultStr(ctx.state(row.StateID), "NA"),
			Zip:        defaultStr(strings.TrimSpace(row.Zip), "00000"),
			Country:    ctx.country(row.CountryID),
			Lat:        row.Lat,
			Lng:        row.Lng,
			Hidden:     false,
		}
		if err := ctx.db.Create(&loc).Error; err != nil {
			ctx.log.Error("create location failed", "legacy_id", row.ID, "listing_id", row.ListingID, "error", err)
			continue
		}
		count++
	}

	// Второй проход: синтезируем локацию из адресных полей листинга
	// для провайдеров, не получивших ни одной настоящей.
	fallbackCount := 0
	for _, fb := range ctx.fallbackAddrs {
		if _, ok := ctx.providersWithLocation[fb.providerID]; ok {
			continue
		}
		if fb.address1 == "" && fb.city == "" {
			continue
		}

		loc := model.Location{
			ProviderID: fb.providerID,
			Address1:   defaultStr(fb.address1, "No address"),
			Address2:   nullIfEmpty(fb.address2),
			City:       defaultStr(fb.city, "Unknown"),
			State:      defaultStr(ctx.state(fb.stateID), "NA"),
			Zip:        defaultStr(fb.zip, "00000"),
			Country:    ctx.country(fb.countryID),
			Hidden:     false,
		}
		if err := ctx.db.Create(&loc).Error; err != nil {
			ctx.log.Error("create fallback location failed", "provider_id", fb.providerID, "error", err)
			continue
		}
		fallbackCount++
		count++
	}
	if fallbackCount > 0 {
		fmt.Printf("  (%d from listing-level address data)\n", fallbackCount)
	}

	ctx.report.Locations = count
	ctx.report.FallbackLocations = fallbackCount
	fmt.Printf("  Migrated %d locations total\n", count)
	return nil
}

func migrateServices(ctx *RunContext) error {
	rows, err := ctx.legacy.MenuItems()
	if err != nil {
		return err
	}

	count := 0
	for _, row := range rows {
		providerID, ok := ctx.providerIDs[row.ListingID]
		if !ok {
			continue
		}

		name := strings.TrimSpace(row.Name)
		if name == "" {
			continue
		}

		svc := model.Service{
			ProviderID:  providerID,
			Name:        name,
			Type:        nullIfEmpty(row.Type),
			Price:       ParsePrice(row.Price),
			Description: StripHTML(row.HTMLData),
			IsSpecial:   YesNo(row.Special),
			SortOrder:   int(row.Sequence),
		}
		if err := ctx.db.Create(&svc).Error; err != nil {
			ctx.log.Error("create service failed", "legacy_id", row.ID, "listing_id", row.ListingID, "error", err)
			continue
		}
		count++
	}

	ctx.report.Services = count
	fmt.Printf("  Migrated %d services\n", count)
	return nil
}

func migratePhotos(ctx *RunContext) error {
	rows, err := ctx.legacy.Photos()
	if err != nil {
		return err
	}

	count := 0
	for _, row := range rows {
		providerID, ok := ctx.providerIDs[row.ListingID]
		if !ok {
			continue
		}

		url := strings.TrimSpace(row.FullImage)
		if url == "" {
			continue
		}

		photo := model.Photo{
			ProviderID: providerID,
			Name:       nullIfEmpty(row.Name),
			Caption:    nullIfEmpty(row.Caption),
			URL:        url,
			ThumbURL:   nullIfEmpty(row.ThumbImage),
			SortOrder:  int(row.Sequence),
			Hidden:     false,
		}
		if err := ctx.db.Create(&photo).Error; err != nil {
			ctx.log.Error("create photo failed", "legacy_id", row.ID, "listing_id", row.ListingID, "error", err)
			continue
		}
		count++
	}

	ctx.report.Photos = count
	fmt.Printf("  Migrated %d photos\n", count)
	return nil
}

func migrateEvents(ctx *RunContext) error {
	rows, err := ctx.legacy.Events()
	if err != nil {
		return err
	}

	count := 0
	for _, row := range rows {
		providerID, ok := ctx.providerIDs[row.ListingID]
		if !ok {
			continue
		}

		name := strings.TrimSpace(row.Name)
		if name == "" {
			continue
		}

		startDate, ok := ParseDate(row.StartDate)
		if !ok {
			continue
		}

		// Богатое описание в приоритете; plain-text поле — запасной
		// вариант, только когда html_data вовсе отсутствует.
		description := StripHTML(row.HTMLData)
		if row.HTMLData == "" {
			description = nullIfEmpty(row.Description)
		}

		var endDate *datatypes.Date
		if t, ok := ParseDate(row.EndDate); ok {
			d := datatypes.Date(t)
			endDate = &d
		}

		event := model.Event{
			ProviderID:  providerID,
			Name:        name,
			Description: description,
			StartDate:   datatypes.Date(startDate),
			EndDate:     endDate,
			City:        nullIfEmpty(row.City),
			State:       nullIfEmpty(ctx.state(row.StateID)),
			Country:     ctx.country(row.CountryID),
			Zip:         nullIfEmpty(row.Zip),
			Hidden:      false,
		}
		if err := ctx.db.Create(&event).Error; err != nil {
			ctx.log.Error("create event failed", "legacy_id", row.ID, "listing_id", row.ListingID, "error", err)
			continue
		}
		count++
	}

	ctx.report.Events = count
	fmt.Printf("  Migrated %d events\n", count)
	return nil
}

func migrateCoupons(ctx *RunContext) error {
	rows, err := ctx.legacy.Coupons()
	if err != nil {
		return err
	}

	count := 0
	for _, row := range rows {
		providerID, ok := ctx.providerIDs[row.ListingID]
		if !ok {
			continue
		}

		name := strings.TrimSpace(row.Name)
		if name == "" {
			continue
		}

		var expiration *datatypes.Date
		if t, ok := ParseDate(row.ExpirationDate); ok {
			d := datatypes.Date(t)
			expiration = &d
		}

		coupon := model.Coupon{
			ProviderID:      providerID,
			Name:            name,
			Description:     StripHTML(row.HTMLData),
			SmallPrint:      StripHTML(row.SmallPrintData),
			PromoCode:       nullIfEmpty(row.PromoCode),
			ExpirationDate:  expiration,
			FirstTimeOnly:   YesNo(row.FirstTimeOnly),
			AppointmentOnly: YesNo(row.AppointmentOnly),
			Hidden:          false,
			SortOrder:       int(row.Sequence),
		}
		if err := ctx.db.Create(&coupon).Error; err != nil {
			ctx.log.Error("create coupon failed", "legacy_id", row.ID, "listing_id", row.ListingID, "error", err)
			continue
		}
		count++
	}

	ctx.report.Coupons = count
	fmt.Printf("  Migrated %d coupons\n", count)
	return nil
}

func migrateReviews(ctx *RunContext) error {
	rows, err := ctx.legacy.Comments()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	count := 0
	for _, row := range rows {
		providerID, ok := ctx.providerIDs[row.TableID]
		if !ok {
			continue
		}

		content := strings.TrimSpace(row.Comment)
		if content == "" {
			continue
		}

		review := model.Review{
			ProviderID: providerID,
			Content:    content,
			Status:     model.ReviewStatusActive,
			CreatedAt:  DateOr(row.DateTime, now),
		}
		if err := ctx.db.Create(&review).Error; err != nil {
			ctx.log.Error("create review failed", "legacy_id", row.ID, "listing_id", row.TableID, "error", err)
			continue
		}
		count++
	}

	ctx.report.Reviews = count
	fmt.Printf("  Migrated %d reviews\n", count)
	return nil
}

func defaultStr(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
