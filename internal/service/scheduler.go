package service

import "time"

// Scheduler abstrae la programacion de tareas diferidas, para que los
// tests puedan disparar el trabajo sin esperar timers reales.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) (cancel func())
}

type timerScheduler struct{}

// NewTimerScheduler devuelve el scheduler de produccion sobre time.AfterFunc.
func NewTimerScheduler() Scheduler {
	return timerScheduler{}
}

func (timerScheduler) AfterFunc(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}
