package main

import (
	"fmt"
	"os"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// Generates a TOTP secret for the admin login. Run once during setup and
// store the secret in the ADMIN_TOTP_SECRET environment variable.
func main() {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "Launchpad Admin",
		AccountName: "admin@launchpad",
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating TOTP secret: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("============================================================")
	fmt.Println("TOTP Secret Generated for Admin Login")
	fmt.Println("============================================================")
	fmt.Println()
	fmt.Printf("Secret: %s\n", key.Secret())
	fmt.Printf("URL:    %s\n", key.URL())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println()
	fmt.Printf("export ADMIN_TOTP_SECRET='%s'\n", key.Secret())
	fmt.Println()
	fmt.Println("Scan the URL as a QR code in an authenticator app, or add the")
	fmt.Println("secret manually, to produce the totp_code for /admin/login.")
}
