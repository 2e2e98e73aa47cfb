package migration

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Чистые функции нормализации легаси-данных. Никаких побочных эффектов:
// всё, что они знают о мире, приходит аргументами.

var (
	reNonSlugChars  = regexp.MustCompile(`[^\w\s-]`)
	reSpacesUnders  = regexp.MustCompile(`[\s_]+`)
	reRepeatHyphens = regexp.MustCompile(`-+`)
	reHTMLTag       = regexp.MustCompile(`<[^>]*>`)
	reNumericRun    = regexp.MustCompile(`[0-9]*\.?[0-9]+`)
)

// Slugify приводит произвольное имя к URL-безопасному виду:
// нижний регистр, дефисы вместо пробелов/подчёркиваний, без мусорных символов.
// Может вернуть пустую строку — коллбек на этот случай у SlugSet.
func Slugify(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = reNonSlugChars.ReplaceAllString(s, "")
	s = reSpacesUnders.ReplaceAllString(s, "-")
	s = reRepeatHyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// SlugSet отслеживает уже выданные слаги одного типа сущностей в рамках
// прогона и разрешает коллизии до попытки вставки (оптимистично,
// а не retry-on-conflict).
type SlugSet struct {
	prefix string
	seen   map[string]struct{}
}

// NewSlugSet создаёт набор; prefix используется для синтетических слагов
// («category-42»), когда имя не дало ни одного пригодного символа.
func NewSlugSet(prefix string) *SlugSet {
	return &SlugSet{prefix: prefix, seen: make(map[string]struct{})}
}

// Claim возвращает уникальный в рамках прогона слаг для имени name
// и легаси-идентификатора legacyID. Коллизия решается суффиксом -<legacyID>.
func (s *SlugSet) Claim(name string, legacyID int64) string {
	slug := Slugify(name)
	if slug == "" {
		slug = fmt.Sprintf("%s-%d", s.prefix, legacyID)
	}
	if _, ok := s.seen[slug]; ok {
		slug = fmt.Sprintf("%s-%d", slug, legacyID)
	}
	s.seen[slug] = struct{}{}
	return slug
}

// ParsePrice извлекает число из свободного текста цены («$45.00»,
// «Starting at $30»). nil — если числа в строке нет.
func ParsePrice(price string) *float64 {
	if price == "" {
		return nil
	}
	cleaned := strings.NewReplacer("$", "", ",", "").Replace(price)
	match := reNumericRun.FindString(cleaned)
	if match == "" {
		return nil
	}
	num, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return nil
	}
	return &num
}

// YesNo переводит легаси-кодировку Yes/No в bool.
// Строгий allow-list: всё, кроме литерала "Yes", — false.
func YesNo(val string) bool {
	return val == "Yes"
}

// ValidDate сообщает, пригодна ли легаси-дата к переносу.
// Нулевые даты MySQL («0000-00-00», «0000-00-00 00:00:00») непригодны.
func ValidDate(d string) bool {
	return d != "" && !strings.HasPrefix(d, "0000")
}

var legacyDateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate разбирает легаси-дату. ok = false и для нулевых дат,
// и для строк, которые вообще не разбираются.
func ParseDate(d string) (time.Time, bool) {
	if !ValidDate(d) {
		return time.Time{}, false
	}
	for _, layout := range legacyDateLayouts {
		if t, err := time.ParseInLocation(layout, d, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DateOr разбирает легаси-дату, подставляя def для непригодных значений.
func DateOr(d string, def time.Time) time.Time {
	if t, ok := ParseDate(d); ok {
		return t
	}
	return def
}

// StripHTML убирает из легаси-richtext всю тэговую разметку.
// Результат из одних пробелов/тэгов превращается в nil, а не в "".
func StripHTML(html string) *string {
	if html == "" {
		return nil
	}
	text := strings.TrimSpace(reHTMLTag.ReplaceAllString(html, ""))
	if text == "" {
		return nil
	}
	return &text
}

// nullIfEmpty — *string из строки; пустая после TrimSpace даёт nil.
func nullIfEmpty(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
