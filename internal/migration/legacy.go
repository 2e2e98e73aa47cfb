package migration

import (
	"database/sql"
	"fmt"
)

// Строки легаси-таблиц. Даты намеренно строковые: нулевые даты MySQL
// должны дойти до ValidDate как есть, а не упасть в драйвере.

type StateRow struct {
	ID        int64
	ShortName string
}

type CountryRow struct {
	ID        int64
	ShortName string
}

// TaxonomyRow — строка listing_subcategory или ailment_subcategory.
type TaxonomyRow struct {
	ID   int64
	Name string
}

type ListingRow struct {
	ID             int64
	ShortURLString string
	Name           string
	HTMLData       string
	Username       string
	Password       string
	Email          string
	URL            string
	Phone          string
	Fax            string
	Address1       string
	Address2       string
	City           string
	StateID        int64
	CountryID      int64
	Zip            string
	Status         string
	Created        string
	Updated        string
}

// LinkRow — строка junction-таблицы листинг↔рубрика/специализация.
type LinkRow struct {
	ListingID int64
	TargetID  int64
}

type ContactRow struct {
	ID               int64
	ListingID        int64
	FirstName        string
	LastName         string
	Email            string
	Phone            string
	EmailPrivate     string
	PhonePrivate     string
	FirstNamePrivate string
	LastNamePrivate  string
}

type LocationRow struct {
	ID        int64
	ListingID int64
	Name      string
	Address1  string
	Address2  string
	City      string
	StateID   int64
	Zip       string
	CountryID int64
	Lat       *float64
	Lng       *float64
}

type MenuRow struct {
	ID        int64
	ListingID int64
	Name      string
	Type      string
	Price     string
	HTMLData  string
	Special   string
	Sequence  int64
}

type PhotoRow struct {
	ID         int64
	ListingID  int64
	Name       string
	Caption    string
	FullImage  string
	ThumbImage string
	Sequence   int64
}

type EventRow struct {
	ID          int64
	ListingID   int64
	Name        string
	Description string
	HTMLData    string
	StartDate   string
	EndDate     string
	City        string
	StateID     int64
	CountryID   int64
	Zip         string
}

type CouponRow struct {
	ID              int64
	ListingID       int64
	Name            string
	HTMLData        string
	SmallPrintData  string
	ExpirationDate  string
	PromoCode       string
	FirstTimeOnly   string
	AppointmentOnly string
	Sequence        int64
}

// CommentRow — строка полиморфной таблицы comment, уже отфильтрованная
// до tablename_use = 'listing'.
type CommentRow struct {
	ID       int64
	TableID  int64
	Comment  string
	Status   string
	DateTime string
}

// Reader — источник легаси-данных. Каждый метод — один bulk-запрос
// с фильтрами этапа; пагинации нет, результат грузится целиком.
type Reader interface {
	States() ([]StateRow, error)
	Countries() ([]CountryRow, error)
	Categories() ([]TaxonomyRow, error)
	Specialties() ([]TaxonomyRow, error)
	Listings() ([]ListingRow, error)
	CategoryLinks() ([]LinkRow, error)
	SpecialtyLinks() ([]LinkRow, error)
	Contacts() ([]ContactRow, error)
	Locations() ([]LocationRow, error)
	MenuItems() ([]MenuRow, error)
	Photos() ([]PhotoRow, error)
	Events() ([]EventRow, error)
	Coupons() ([]CouponRow, error)
	Comments() ([]CommentRow, error)
}

// SQLReader реализует Reader поверх сырого подключения к легаси-базе.
type SQLReader struct {
	db *sql.DB
}

func NewSQLReader(db *sql.DB) *SQLReader {
	return &SQLReader{db: db}
}

// ns разворачивает NULL-строку в "", чтобы дальше работали обычные
// проверки на пустоту.
func ns(v sql.NullString) string {
	return v.String
}

func ni(v sql.NullInt64) int64 {
	return v.Int64
}

func nf(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func (r *SQLReader) States() ([]StateRow, error) {
	rows, err := r.db.Query(`SELECT id, short_name FROM state`)
	if err != nil {
		return nil, fmt.Errorf("query state: %w", err)
	}
	defer rows.Close()

	var out []StateRow
	for rows.Next() {
		var id int64
		var shortName sql.NullString
		if err := rows.Scan(&id, &shortName); err != nil {
			return nil, fmt.Errorf("scan state: %w", err)
		}
		out = append(out, StateRow{ID: id, ShortName: ns(shortName)})
	}
	return out, rows.Err()
}

func (r *SQLReader) Countries() ([]CountryRow, error) {
	rows, err := r.db.Query(`SELECT id, short_name FROM country`)
	if err != nil {
		return nil, fmt.Errorf("query country: %w", err)
	}
	defer rows.Close()

	var out []CountryRow
	for rows.Next() {
		var id int64
		var shortName sql.NullString
		if err := rows.Scan(&id, &shortName); err != nil {
			return nil, fmt.Errorf("scan country: %w", err)
		}
		out = append(out, CountryRow{ID: id, ShortName: ns(shortName)})
	}
	return out, rows.Err()
}

func (r *SQLReader) taxonomy(table string) ([]TaxonomyRow, error) {
	q := fmt.Sprintf(
		`SELECT id, name FROM %s
		 WHERE (hidden = 'No' OR hidden IS NULL) AND name IS NOT NULL AND name != ''`,
		table,
	)
	rows, err := r.db.Query(q)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	var out []TaxonomyRow
	for rows.Next() {
		var row TaxonomyRow
		if err := rows.Scan(&row.ID, &row.Name); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *SQLReader) Categories() ([]TaxonomyRow, error) {
	return r.taxonomy("listing_subcategory")
}

func (r *SQLReader) Specialties() ([]TaxonomyRow, error) {
	return r.taxonomy("ailment_subcategory")
}

func (r *SQLReader) Listings() ([]ListingRow, error) {
	rows, err := r.db.Query(
		`SELECT id, short_url_string, name, html_data, username, password, email,
		        url, phone, fax, address1, address2, city, state_id, country_id, zip,
		        status, created, updated
		 FROM listing
		 WHERE status = 'active' AND hidden = 'No'`,
	)
	if err != nil {
		return nil, fmt.Errorf("query listing: %w", err)
	}
	defer rows.Close()

	var out []ListingRow
	for rows.Next() {
		var (
			row                                  ListingRow
			shortURL, name, htmlData, username   sql.NullString
			password, email, url, phone, fax     sql.NullString
			address1, address2, city, zip        sql.NullString
			status, created, updated             sql.NullString
			stateID, countryID                   sql.NullInt64
		)
		if err := rows.Scan(
			&row.ID, &shortURL, &name, &htmlData, &username, &password, &email,
			&url, &phone, &fax, &address1, &address2, &city, &stateID, &countryID, &zip,
			&status, &created, &updated,
		); err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		row.ShortURLString = ns(shortURL)
		row.Name = ns(name)
		row.HTMLData = ns(htmlData)
		row.Username = ns(username)
		row.Password = ns(password)
		row.Email = ns(email)
		row.URL = ns(url)
		row.Phone = ns(phone)
		row.Fax = ns(fax)
		row.Address1 = ns(address1)
		row.Address2 = ns(address2)
		row.City = ns(city)
		row.StateID = ni(stateID)
		row.CountryID = ni(countryID)
		row.Zip = ns(zip)
		row.Status = ns(status)
		row.Created = ns(created)
		row.Updated = ns(updated)
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *SQLReader) links(table, idColumn string) ([]LinkRow, error) {
	q := fmt.Sprintf("SELECT listing_id, %s FROM `%s`", idColumn, table)
	rows, err := r.db.Query(q)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	var out []LinkRow
	for rows.Next() {
		var listingID, targetID sql.NullInt64
		if err := rows.Scan(&listingID, &targetID); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		out = append(out, LinkRow{ListingID: ni(listingID), TargetID: ni(targetID)})
	}
	return out, rows.Err()
}

func (r *SQLReader) CategoryLinks() ([]LinkRow, error) {
	return r.links("listing~listing_subcategory", "listing_subcategory_id")
}

func (r *SQLReader) SpecialtyLinks() ([]LinkRow, error) {
	return r.links("listing~ailment_subcategory", "ailment_subcategory_id")
}

func (r *SQLReader) Contacts() ([]ContactRow, error) {
	rows, err := r.db.Query(
		"SELECT id, listing_id, first_name, last_name, email, phone, " +
			"email_private, phone_private, first_name_private, last_name_private " +
			"FROM `listing~contact` " +
			"WHERE hidden != 'Yes' OR hidden IS NULL",
	)
	if err != nil {
		return nil, fmt.Errorf("query listing~contact: %w", err)
	}
	defer rows.Close()

	var out []ContactRow
	for rows.Next() {
		var (
			row                                ContactRow
			firstName, lastName, email, phone  sql.NullString
			emailPriv, phonePriv, fnPriv, lnPriv sql.NullString
			listingID                          sql.NullInt64
		)
		if err := rows.Scan(
			&row.ID, &listingID, &firstName, &lastName, &email, &phone,
			&emailPriv, &phonePriv, &fnPriv, &lnPriv,
		); err != nil {
			return nil, fmt.Errorf("scan listing~contact: %w", err)
		}
		row.ListingID = ni(listingID)
		row.FirstName = ns(firstName)
		row.LastName = ns(lastName)
		row.Email = ns(email)
		row.Phone = ns(phone)
		row.EmailPrivate = ns(emailPriv)
		row.PhonePrivate = ns(phonePriv)
		row.FirstNamePrivate = ns(fnPriv)
		row.LastNamePrivate = ns(lnPriv)
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *SQLReader) Locations() ([]LocationRow, error) {
	rows, err := r.db.Query(
		"SELECT id, listing_id, name, address1, address2, city, state_id, zip, " +
			"country_id, lat, lng " +
			"FROM `listing~location` " +
			"WHERE hidden != 'Yes' OR hidden IS NULL",
	)
	if err != nil {
		return nil, fmt.Errorf("query listing~location: %w", err)
	}
	defer rows.Close()

	var out []LocationRow
	for rows.Next() {
		var (
			row                             LocationRow
			name, address1, address2, city  sql.NullString
			zip                             sql.NullString
			listingID, stateID, countryID   sql.NullInt64
			lat, lng                        sql.NullFloat64
		)
		if err := rows.Scan(
			&row.ID, &listingID, &name, &address1, &address2, &city, &stateID, &zip,
			&countryID, &lat, &lng,
		); err != nil {
			return nil, fmt.Errorf("scan listing~location: %w", err)
		}
		row.ListingID = ni(listingID)
		row.Name = ns(name)
		row.Address1 = ns(address1)
		row.Address2 = ns(address2)
		row.City = ns(city)
		row.StateID = ni(stateID)
		row.Zip = ns(zip)
		row.CountryID = ni(countryID)
		row.Lat = nf(lat)
		row.Lng = nf(lng)
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *SQLReader) MenuItems() ([]MenuRow, error) {
	rows, err := r.db.Query(
		"SELECT id, listing_id, name, type, price, html_data, special, sequence " +
			"FROM `listing~menu` " +
			"WHERE hidden != 'Yes' OR hidden IS NULL",
	)
	if err != nil {
		return nil, fmt.Errorf("query listing~menu: %w", err)
	}
	defer rows.Close()

	var out []MenuRow
	for rows.Next() {
		var (
			row                              MenuRow
			name, typ, price, html, special  sql.NullString
			listingID, sequence              sql.NullInt64
		)
		if err := rows.Scan(&row.ID, &listingID, &name, &typ, &price, &html, &special, &sequence); err != nil {
			return nil, fmt.Errorf("scan listing~menu: %w", err)
		}
		row.ListingID = ni(listingID)
		row.Name = ns(name)
		row.Type = ns(typ)
		row.Price = ns(price)
		row.HTMLData = ns(html)
		row.Special = ns(special)
		row.Sequence = ni(sequence)
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *SQLReader) Photos() ([]PhotoRow, error) {
	rows, err := r.db.Query(
		`SELECT id, listing_id, name, caption, full_image, thumb_image, sequence
		 FROM photo
		 WHERE hidden != 'Yes' OR hidden IS NULL`,
	)
	if err != nil {
		return nil, fmt.Errorf("query photo: %w", err)
	}
	defer rows.Close()

	var out []PhotoRow
	for rows.Next() {
		var (
			row                            PhotoRow
			name, caption, full, thumb     sql.NullString
			listingID, sequence            sql.NullInt64
		)
		if err := rows.Scan(&row.ID, &listingID, &name, &caption, &full, &thumb, &sequence); err != nil {
			return nil, fmt.Errorf("scan photo: %w", err)
		}
		row.ListingID = ni(listingID)
		row.Name = ns(name)
		row.Caption = ns(caption)
		row.FullImage = ns(full)
		row.ThumbImage = ns(thumb)
		row.Sequence = ni(sequence)
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *SQLReader) Events() ([]EventRow, error) {
	rows, err := r.db.Query(
		`SELECT id, listing_id, name, description, html_data, start_date, end_date,
		        city, state_id, country_id, zip
		 FROM listing_event
		 WHERE hidden != 'Yes' OR hidden IS NULL`,
	)
	if err != nil {
		return nil, fmt.Errorf("query listing_event: %w", err)
	}
	defer rows.Close()

	var out []EventRow
	for rows.Next() {
		var (
			row                                       EventRow
			name, description, html, start, end, city sql.NullString
			zip                                       sql.NullString
			listingID, stateID, countryID             sql.NullInt64
		)
		if err := rows.Scan(
			&row.ID, &listingID, &name, &description, &html, &start, &end,
			&city, &stateID, &countryID, &zip,
		); err != nil {
			return nil, fmt.Errorf("scan listing_event: %w", err)
		}
		row.ListingID = ni(listingID)
		row.Name = ns(name)
		row.Description = ns(description)
		row.HTMLData = ns(html)
		row.StartDate = ns(start)
		row.EndDate = ns(end)
		row.City = ns(city)
		row.StateID = ni(stateID)
		row.CountryID = ni(countryID)
		row.Zip = ns(zip)
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *SQLReader) Coupons() ([]CouponRow, error) {
	rows, err := r.db.Query(
		`SELECT id, listing_id, name, html_data, small_print_data, expiration_date,
		        promo_code, first_time_only, appointment_only, sequence
		 FROM coupon
		 WHERE hidden != 'Yes' OR hidden IS NULL`,
	)
	if err != nil {
		return nil, fmt.Errorf("query coupon: %w", err)
	}
	defer rows.Close()

	var out []CouponRow
	for rows.Next() {
		var (
			row                                     CouponRow
			name, html, smallPrint, expiration      sql.NullString
			promoCode, firstTime, appointment       sql.NullString
			listingID, sequence                     sql.NullInt64
		)
		if err := rows.Scan(
			&row.ID, &listingID, &name, &html, &smallPrint, &expiration,
			&promoCode, &firstTime, &appointment, &sequence,
		); err != nil {
			return nil, fmt.Errorf("scan coupon: %w", err)
		}
		row.ListingID = ni(listingID)
		row.Name = ns(name)
		row.HTMLData = ns(html)
		row.SmallPrintData = ns(smallPrint)
		row.ExpirationDate = ns(expiration)
		row.PromoCode = ns(promoCode)
		row.FirstTimeOnly = ns(firstTime)
		row.AppointmentOnly = ns(appointment)
		row.Sequence = ni(sequence)
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *SQLReader) Comments() ([]CommentRow, error) {
	rows, err := r.db.Query(
		`SELECT id, tableid, comment, status, _datetime
		 FROM comment
		 WHERE (hidden != 'Yes' OR hidden IS NULL) AND status = 'active'
		   AND tablename_use = 'listing' AND tableid IS NOT NULL`,
	)
	if err != nil {
		return nil, fmt.Errorf("query comment: %w", err)
	}
	defer rows.Close()

	var out []CommentRow
	for rows.Next() {
		var (
			row                        CommentRow
			comment, status, datetime  sql.NullString
			tableID                    sql.NullInt64
		)
		if err := rows.Scan(&row.ID, &tableID, &comment, &status, &datetime); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		row.TableID = ni(tableID)
		row.Comment = ns(comment)
		row.Status = ns(status)
		row.DateTime = ns(datetime)
		out = append(out, row)
	}
	return out, rows.Err()
}
