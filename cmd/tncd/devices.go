package main

/*------------------------------------------------------------------
 *
 * Purpose:	Device enumeration helper so an operator can pick a
 *		sound card or GPIO chip by name instead of guessing
 *		/dev paths.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"

	"github.com/jochenvg/go-udev"
)

// listSoundCards prints the ALSA sound devices udev knows about.
func listSoundCards() error {
	u := udev.Udev{}
	enum := u.NewEnumerate()
	if err := enum.AddMatchSubsystem("sound"); err != nil {
		return fmt.Errorf("matching sound subsystem: %w", err)
	}
	devices, err := enum.Devices()
	if err != nil {
		return fmt.Errorf("enumerating sound devices: %w", err)
	}
	for _, d := range devices {
		name := d.PropertyValue("ID_MODEL")
		if name == "" {
			name = d.Sysname()
		}
		fmt.Printf("%s\t%s\n", d.Syspath(), name)
	}
	return nil
}

// listGPIOChips prints the gpiochip devices udev knows about.
func listGPIOChips() error {
	u := udev.Udev{}
	enum := u.NewEnumerate()
	if err := enum.AddMatchSubsystem("gpio"); err != nil {
		return fmt.Errorf("matching gpio subsystem: %w", err)
	}
	devices, err := enum.Devices()
	if err != nil {
		return fmt.Errorf("enumerating gpio devices: %w", err)
	}
	for _, d := range devices {
		fmt.Printf("%s\t%s\n", d.Syspath(), d.Sysname())
	}
	return nil
}
