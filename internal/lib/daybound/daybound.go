// Package daybound считает границы календарного дня для модели истечения
// подписок: любая подписка живёт до ближайшей местной полуночи.
package daybound

import "time"

// NextMidnight возвращает начало следующего календарного дня
// в часовом поясе момента t.
func NextMidnight(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day+1, 0, 0, 0, 0, t.Location())
}

// PastMidnight сообщает, наступил ли момент deadline к моменту now.
// Граница включительная: ровно в полночь подписка уже не действует.
func PastMidnight(deadline, now time.Time) bool {
	return !deadline.After(now)
}
