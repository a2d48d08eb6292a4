package clock

import "time"

// Date représente une date calendaire (jour civil), sans heure.
// Toute l'arithmétique de jours du moteur passe par ce type : on tronque
// d'abord l'instant à minuit local, puis on soustrait des dates normalisées.
// Soustraire des instants bruts autour d'un changement d'heure produit des
// décalages d'un jour.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf tronque un instant à sa date calendaire locale.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// NewDate construit une date calendaire explicite.
func NewDate(year int, month time.Month, day int) Date {
	// Normaliser via time.Date (gère 32 janvier -> 1er février, etc.)
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// ParseDate parse une date au format 2006-01-02.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

// utc renvoie la date ancrée à minuit UTC. Les deux opérandes de DaysBetween
// étant ancrées pareil, la division par 24h tombe toujours juste.
func (d Date) utc() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// AddDays renvoie la date décalée de n jours (n peut être négatif).
func (d Date) AddDays(n int) Date {
	return DateOf(d.utc().AddDate(0, 0, n))
}

// Before renvoie true si d précède strictement other.
func (d Date) Before(other Date) bool {
	return d.utc().Before(other.utc())
}

// Equal renvoie true si les deux dates désignent le même jour civil.
func (d Date) Equal(other Date) bool {
	return d == other
}

// IsZero renvoie true pour la valeur zéro du type.
func (d Date) IsZero() bool {
	return d == Date{}
}

// String renvoie la date au format 2006-01-02.
func (d Date) String() string {
	return d.utc().Format("2006-01-02")
}

// DaysBetween renvoie le nombre de jours civils entre a et b (b - a).
// Résultat négatif si b précède a.
func DaysBetween(a, b Date) int {
	return int(b.utc().Sub(a.utc()).Hours() / 24)
}

// Clock fournit la date du jour. Injectée partout où le moteur a besoin de
// "aujourd'hui" pour que les tests puissent figer le temps.
type Clock interface {
	Today() Date
}

// SystemClock lit l'horloge murale locale.
type SystemClock struct{}

func (SystemClock) Today() Date {
	return DateOf(time.Now())
}

// FixedClock renvoie toujours la même date. Réservé aux tests.
type FixedClock struct {
	Date Date
}

func (f FixedClock) Today() Date {
	return f.Date
}
