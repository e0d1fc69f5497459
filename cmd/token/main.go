// Command token mints a development access token for the board server.
//
//	token -s secretKey -u recruiter-1 -ttl 24h
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/dmitrijs2005/hireboard/internal/server/auth"
)

func main() {
	secret := flag.String("s", "secretKey", "JWT HMAC secret key")
	userID := flag.String("u", "dev", "user id to embed")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	token, err := auth.GenerateToken(*userID, []byte(*secret), *ttl)
	if err != nil {
		log.Fatalf("generate token: %v", err)
	}

	fmt.Println(token)
}
