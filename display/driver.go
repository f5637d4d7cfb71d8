// Package display hands finished dashboard bitmaps to an output device.
package display

import (
	"errors"
	"fmt"
	"image"
	"log"
)

// Driver is an output device for a single refresh cycle. Calls arrive in the
// order Init, Clear, Render, Refresh, Sleep, Close.
type Driver interface {
	Init() error
	Clear() error
	Render(img image.Image) error
	Refresh() error
	Sleep() error
	Close() error
}

// DriverError reports which driver step failed
type DriverError struct {
	Step string
	Err  error
}

func (e *DriverError) Error() string {
	return fmt.Sprintf("display %s failed: %v", e.Step, e.Err)
}

func (e *DriverError) Unwrap() error {
	return e.Err
}

func step(name string, fn func() error) error {
	if err := fn(); err != nil {
		return &DriverError{Step: name, Err: err}
	}
	return nil
}

// Session owns a driver between Open and Close
type Session struct {
	driver Driver
	closed bool
}

// Open initialises and clears the driver. When either step fails the driver
// is still put to sleep and closed before the error is returned.
func Open(driver Driver) (*Session, error) {
	s := &Session{driver: driver}

	log.Println("Initializing and clearing the display...")
	err := step("init", driver.Init)
	if err == nil {
		err = step("clear", driver.Clear)
	}
	if err != nil {
		if cerr := s.Close(); cerr != nil {
			log.Printf("Failed to release display: %v", cerr)
		}
		return nil, err
	}
	return s, nil
}

// Show renders img and refreshes the panel
func (s *Session) Show(img image.Image) error {
	if s.closed {
		return errors.New("display session is closed")
	}
	if err := step("render", func() error { return s.driver.Render(img) }); err != nil {
		return err
	}
	return step("refresh", s.driver.Refresh)
}

// Close puts the panel to sleep and releases the driver. Close is attempted
// even if Sleep fails; later calls are no-ops.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	log.Println("Putting the display to sleep...")
	return errors.Join(
		step("sleep", s.driver.Sleep),
		step("close", s.driver.Close),
	)
}
