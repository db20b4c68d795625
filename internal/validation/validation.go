// Package validation holds the client-side form checks that run before any
// request leaves the process.
package validation

import (
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/Abdurahmanit/GroupProject/lostpets/internal/domain"
)

var (
	nameRe  = regexp.MustCompile(`^[А-Яа-яЁё\s-]+$`)
	phoneRe = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
	emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

const minPasswordLen = 7

var photoExts = map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".webp": true}

// Errors maps form field names to a user-readable message.
type Errors map[string]string

func (e Errors) Error() string {
	return e.Message()
}

// Message lists the problems one field per line, sorted by field name.
func (e Errors) Message() string {
	names := make([]string, 0, len(e))
	for name := range e {
		names = append(names, name)
	}
	sort.Strings(names)
	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, e[name])
	}
	return strings.Join(lines, "\n")
}

// Err returns nil when there is nothing to report.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

func IsEmail(s string) bool {
	return strings.Contains(s, "@")
}

func ValidName(s string) bool  { return nameRe.MatchString(strings.TrimSpace(s)) }
func ValidPhone(s string) bool { return phoneRe.MatchString(strings.TrimSpace(s)) }
func ValidEmail(s string) bool { return emailRe.MatchString(strings.TrimSpace(s)) }

// ValidPassword: at least 7 characters with a digit, a lower- and an upper-case letter.
func ValidPassword(s string) bool {
	if len([]rune(s)) < minPasswordLen {
		return false
	}
	var digit, lower, upper bool
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		}
	}
	return digit && lower && upper
}

func Login(identifier, password string) error {
	errs := Errors{}
	id := strings.TrimSpace(identifier)
	switch {
	case id == "":
		errs["identifier"] = "Введите телефон или email"
	case IsEmail(id) && !ValidEmail(id):
		errs["identifier"] = "Некорректный email"
	case !IsEmail(id) && !ValidPhone(id):
		errs["identifier"] = "Телефон может содержать только цифры и знак +"
	}
	if password == "" {
		errs["password"] = "Введите пароль"
	}
	return errs.Err()
}

func Registration(r domain.Registration) error {
	errs := Errors{}
	if !ValidName(r.Name) {
		errs["name"] = "Имя: только кириллица, пробел и дефис"
	}
	if !ValidPhone(r.Phone) {
		errs["phone"] = "Телефон может содержать только цифры и знак +"
	}
	if !ValidEmail(r.Email) {
		errs["email"] = "Некорректный email"
	}
	if !ValidPassword(r.Password) {
		errs["password"] = "Пароль: не менее 7 символов, цифра, строчная и заглавная буква"
	}
	if r.Password != r.PasswordConfirmation {
		errs["password_confirmation"] = "Пароли не совпадают"
	}
	if !r.Confirm {
		errs["confirm"] = "Необходимо согласие на обработку персональных данных"
	}
	return errs.Err()
}

func ProfilePatch(p domain.ProfilePatch) error {
	errs := Errors{}
	if p.Name != nil && !ValidName(*p.Name) {
		errs["name"] = "Имя: только кириллица, пробел и дефис"
	}
	if p.Phone != nil && !ValidPhone(*p.Phone) {
		errs["phone"] = "Телефон может содержать только цифры и знак +"
	}
	if p.Email != nil && !ValidEmail(*p.Email) {
		errs["email"] = "Некорректный email"
	}
	return errs.Err()
}

// Listing checks the add/update form. requirePhoto is true on create, where photo1 is mandatory.
func Listing(f domain.ListingForm, requirePhoto bool) error {
	errs := Errors{}
	if !ValidName(f.Name) {
		errs["name"] = "Имя: только кириллица, пробел и дефис"
	}
	if !ValidPhone(f.Phone) {
		errs["phone"] = "Телефон может содержать только цифры и знак +"
	}
	if !ValidEmail(f.Email) {
		errs["email"] = "Некорректный email"
	}
	if strings.TrimSpace(f.Kind) == "" {
		errs["kind"] = "Укажите вид животного"
	}
	if strings.TrimSpace(f.District) == "" {
		errs["district"] = "Укажите район"
	}
	if strings.TrimSpace(f.Description) == "" {
		errs["description"] = "Добавьте описание"
	}
	if requirePhoto && (f.Photo1 == nil || len(f.Photo1.Data) == 0) {
		errs["photo1"] = "Добавьте хотя бы одну фотографию"
	}
	for field, p := range map[string]*domain.Photo{"photo1": f.Photo1, "photo2": f.Photo2, "photo3": f.Photo3} {
		if p != nil && len(p.Data) > 0 && !photoExts[strings.ToLower(filepath.Ext(p.FileName))] {
			errs[field] = "Фото должно быть в формате png, jpg или webp"
		}
	}
	if !f.Confirm {
		errs["confirm"] = "Необходимо согласие на обработку персональных данных"
	}
	return errs.Err()
}

func Subscription(email string) error {
	if !ValidEmail(email) {
		return Errors{"email": "Некорректный email"}
	}
	return nil
}
