package dev

import (
	"encoding/json"
	"github.com/mintduck/nft-marketplace/internal/config"
	"log"
)

func Dump(el interface{}) {
	if config.Get().Debug {
		elJson, _ := json.MarshalIndent(el, "", "  ")
		log.Println(string(elJson))
	}
}
