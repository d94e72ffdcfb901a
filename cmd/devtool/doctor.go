package main

import "fmt"

type DoctorCommand struct{}

func (c *DoctorCommand) Name() string {
	return "doctor"
}

func (c *DoctorCommand) Description() string {
	return "Diagnose environment issues (deps + db + schema)"
}

func (c *DoctorCommand) Run(args []string) error {
	PrintHeader("Running Doctor...")

	checks := []struct {
		label string
		run   func() error
	}{
		{"Dependencies", func() error { return (&CheckDepsCommand{}).Run(nil) }},
		{"Database", func() error { return (&CheckDBCommand{}).Run(nil) }},
		{"Schema", func() error { return (&MigrateCommand{}).Run([]string{"status"}) }},
	}

	hasError := false
	for _, check := range checks {
		if err := check.run(); err != nil {
			PrintError("%s check failed: %v", check.label, err)
			hasError = true
		} else {
			PrintSuccess("%s OK", check.label)
		}
	}

	if hasError {
		return fmt.Errorf("doctor found issues")
	}

	PrintSuccess("All systems operational!")
	return nil
}
