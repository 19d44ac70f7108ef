// devtoken emite un token de identidad firmado con JWT_SECRET para probar la
// API en local sin proveedor de identidad externo.
//
// Uso: go run ./cmd/devtoken -sub user_123 -email ana@example.com -name "Ana"
// Imprime el token por stdout; usarlo como "Authorization: Bearer <token>".
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/invoicething/pkg/config"
	"github.com/jhoicas/invoicething/pkg/jwt"
)

func main() {
	sub := flag.String("sub", "dev-user", "subject del proveedor de identidad")
	email := flag.String("email", "", "email del usuario")
	name := flag.String("name", "", "nombre del usuario")
	image := flag.String("image", "", "URL de la imagen de perfil")
	minutes := flag.Int("minutes", 0, "vigencia en minutos (por defecto JWT_EXPIRATION_MINUTES)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	if cfg.JWT.Secret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET no está definido")
		os.Exit(1)
	}

	exp := cfg.JWT.Expiration
	if *minutes > 0 {
		exp = *minutes
	}
	token, err := jwt.Generate(cfg.JWT.Secret, cfg.JWT.Issuer, jwt.Identity{
		Subject:  *sub,
		Email:    *email,
		Name:     *name,
		ImageURL: *image,
	}, exp)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Firmar token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
