package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/BeatGlow/screen/conn"
)

func main() {
	busFlag := flag.Int("bus", 0, "SPI bus")
	deviceFlag := flag.Int("device", 0, "SPI device")
	speedFlag := flag.Int("speed", 0, "Maximum SPI speed in Hz to request, 0 keeps the current speed")
	flag.Parse()

	c, err := conn.OpenSPI(*busFlag, *deviceFlag)
	if err != nil {
		log.Fatalln("open failed: ", err)
	}
	if *speedFlag > 0 {
		if err = c.SetMaxSpeed(*speedFlag); err != nil {
			log.Fatalln("set speed failed: ", err)
		}
	}
	fmt.Println("connected using", c)
	if err = c.Close(); err != nil {
		log.Fatalln("close failed: ", err)
	}
}
