package validation

import (
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	// Letters and whitespace only.
	nameRegex = regexp.MustCompile(`^[a-zA-Z\s]+$`)

	// Optional +, no leading zero, at most 16 digits.
	phoneRegex = regexp.MustCompile(`^[\+]?[1-9][\d]{0,15}$`)
)

var (
	once     sync.Once
	instance *validator.Validate
)

// New returns the shared validator with the custom tags registered.
func New() *validator.Validate {
	once.Do(func() {
		instance = validator.New()
		RegisterValidators(instance)
	})
	return instance
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("valid_name", ValidName)
	_ = v.RegisterValidation("valid_phone", ValidPhone)
}

// ValidName reports whether the value is made of letters and spaces.
// Empty strings fail; optionality is decided by the caller.
func ValidName(fl validator.FieldLevel) bool {
	return nameRegex.MatchString(fl.Field().String())
}

// ValidPhone validates a phone number structure
func ValidPhone(fl validator.FieldLevel) bool {
	return phoneRegex.MatchString(fl.Field().String())
}

var (
	icloudDomains = map[string]bool{"icloud.com": true, "me.com": true}
	yahooDomains  = map[string]bool{
		"rocketmail.com": true, "yahoo.ca": true, "yahoo.co.uk": true, "yahoo.com": true,
		"yahoo.de": true, "yahoo.fr": true, "yahoo.in": true, "yahoo.it": true, "ymail.com": true,
	}
	yandexDomains = map[string]bool{
		"yandex.ru": true, "yandex.ua": true, "yandex.kz": true,
		"yandex.com": true, "yandex.by": true, "ya.ru": true,
	}
)

// Outlook.com addresses exist under hotmail, live and outlook for many
// country suffixes.
func isOutlookDomain(domain string) bool {
	if domain == "msn.com" || domain == "passport.com" {
		return true
	}
	first, _, ok := strings.Cut(domain, ".")
	return ok && (first == "hotmail" || first == "live" || first == "outlook")
}

// NormalizeEmail canonicalizes an address before it is stored or used as Reply-To.
// The whole address is lowercased, then provider rules apply: Gmail drops dots
// and +tags (googlemail.com folds into gmail.com), Outlook.com and iCloud drop
// +tags, Yahoo drops the last -tag, Yandex domains fold into yandex.ru.
func NormalizeEmail(addr string) string {
	addr = strings.ToLower(strings.TrimSpace(addr))
	at := strings.LastIndex(addr, "@")
	if at <= 0 || at == len(addr)-1 {
		return addr
	}

	local, domain := addr[:at], addr[at+1:]
	switch {
	case domain == "gmail.com" || domain == "googlemail.com":
		local = strings.ReplaceAll(stripTag(local, "+"), ".", "")
		domain = "gmail.com"
	case isOutlookDomain(domain), icloudDomains[domain]:
		local = stripTag(local, "+")
	case yahooDomains[domain]:
		if dash := strings.LastIndex(local, "-"); dash > 0 {
			local = local[:dash]
		}
	case yandexDomains[domain]:
		domain = "yandex.ru"
	}
	if local == "" {
		return addr
	}
	return local + "@" + domain
}

func stripTag(local, sep string) string {
	if i := strings.Index(local, sep); i >= 0 {
		return local[:i]
	}
	return local
}
