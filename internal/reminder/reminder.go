// Package reminder, sulama ve gübreleme hatırlatıcılarının ilerlemesini hesaplar.
package reminder

import (
	"fmt"
	"time"
)

// Timer, sabit süreli bir hatırlatıcıyı tanımlar
type Timer struct {
	Name     string
	Action   string
	Duration time.Duration
}

var (
	Water      = Timer{Name: "Water", Action: "water", Duration: 24 * time.Hour}
	Fertilizer = Timer{Name: "Fertilizer", Action: "fertilize", Duration: 48 * time.Hour}
)

const loginRequired = "Login Required"

// Status, bir hatırlatıcının anlık durumu
type Status struct {
	Name    string  `json:"name"`
	Percent float64 `json:"percent"`
	Message string  `json:"message"`
	Due     bool    `json:"due"`
}

// Calculate, başlangıç zamanı ve toplam süreye göre ilerleme yüzdesini ve kalan süre metnini döndürür.
// start nil ise kullanıcı giriş yapmamıştır.
func Calculate(start *time.Time, total time.Duration, action string, now time.Time) Status {
	if start == nil {
		return Status{Percent: 0, Message: loginRequired}
	}

	elapsed := now.Sub(*start)
	if total <= 0 || elapsed >= total {
		return Status{Percent: 100, Message: fmt.Sprintf("Time to %s!", action), Due: true}
	}

	percent := elapsed.Seconds() / total.Seconds() * 100
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	remaining := int64((total - elapsed).Seconds())
	return Status{
		Percent: percent,
		Message: "Time left: " + FormatRemaining(remaining),
	}
}

// Check, Calculate'i verilen Timer için çalıştırır
func (t Timer) Check(start *time.Time, now time.Time) Status {
	st := Calculate(start, t.Duration, t.Action, now)
	st.Name = t.Name
	return st
}

// Snapshot, ana sayfa ve JSON uç noktası için iki hatırlatıcının durumunu döndürür
func Snapshot(waterStart, fertilizerStart *time.Time, now time.Time) []Status {
	return []Status{
		Water.Check(waterStart, now),
		Fertilizer.Check(fertilizerStart, now),
	}
}

// FormatRemaining formats whole seconds as "H:MM:SS", prefixed by
// "N day(s), " once the value reaches a full day.
func FormatRemaining(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	days := seconds / 86400
	rest := seconds % 86400
	clock := fmt.Sprintf("%d:%02d:%02d", rest/3600, (rest%3600)/60, rest%60)
	switch {
	case days == 1:
		return "1 day, " + clock
	case days > 1:
		return fmt.Sprintf("%d days, %s", days, clock)
	}
	return clock
}
