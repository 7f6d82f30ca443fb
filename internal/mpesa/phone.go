package mpesa

import "regexp"

// Кенийский мобильный номер: безопасные префиксы 254/+254/0, далее
// код оператора 7xx или 1xx и шесть цифр.
var phoneRe = regexp.MustCompile(`^(?:254|\+254|0)?([71](?:(?:[0-9][0-9])|(?:0[0-8]))[0-9]{6})$`)

// ValidPhoneNumber сообщает, похож ли s на номер, зарегистрированный в M-PESA.
func ValidPhoneNumber(s string) bool {
	return phoneRe.MatchString(s)
}
