package main

import (
	"context"
	"log"

	"github.com/johithjpr-lab/ecommerce-platform/internal/app/api"
)

func main() {
	if err := api.Run(context.Background()); err != nil {
		log.Fatalf("api exited: %v", err)
	}
}
