// token emite un JWT para un operador. La API no gestiona usuarios: los tokens se
// entregan fuera de banda con este comando.
//
// Uso: go run ./cmd/token -user juan -role bodeguero -minutes 480
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/almacen-api/pkg/config"
	"github.com/jhoicas/almacen-api/pkg/jwt"
)

func main() {
	user := flag.String("user", "", "identificador del operador (obligatorio)")
	role := flag.String("role", jwt.RoleConsulta, "rol: admin, bodeguero o consulta")
	minutes := flag.Int("minutes", 0, "vigencia en minutos (0 = JWT_EXPIRATION_MINUTES)")
	flag.Parse()

	if *user == "" {
		flag.Usage()
		os.Exit(2)
	}
	if !jwt.IsKnownRole(*role) {
		fmt.Fprintf(os.Stderr, "rol desconocido %q\n", *role)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	exp := *minutes
	if exp <= 0 {
		exp = cfg.JWT.Expiration
	}

	tok, err := jwt.Generate(cfg.JWT.Secret, *user, *role, cfg.JWT.Issuer, exp)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generar token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
