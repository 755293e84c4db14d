package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/milk9111/dreamless/levels"
	"github.com/milk9111/dreamless/obj"
)

func main() {
	dir := flag.String("dir", levels.DefaultDir, "directory holding level/<n>.txt overrides")
	flag.Parse()

	src := levels.Source{Dir: *dir}
	n := src.Count()
	if n == 0 {
		log.Fatalf("levelcheck: no levels found")
	}

	failed := 0
	for i := 1; i <= n; i++ {
		lvl, err := obj.LoadLevel(src, strconv.Itoa(i))
		if err != nil {
			failed++
			fmt.Printf("level %d: %v\n", i, err)
			continue
		}
		fmt.Printf("level %d: %s\n", i, summarize(lvl))
	}
	if failed > 0 {
		fmt.Printf("%d of %d levels failed\n", failed, n)
		os.Exit(1)
	}
}

func summarize(lvl *obj.Level) string {
	counts := map[obj.SpawnType]int{}
	for _, sp := range lvl.SpawnPoints() {
		counts[sp.Type]++
	}
	actions := ""
	for _, a := range []struct {
		action obj.Action
		letter string
	}{
		{obj.ActionJump, "j"},
		{obj.ActionJumpBack, "b"},
		{obj.ActionTurn, "t"},
		{obj.ActionDrop, "d"},
	} {
		if lvl.IsActionAllowed(a.action) {
			actions += a.letter
		}
	}
	if actions == "" {
		actions = "none"
	}
	return fmt.Sprintf("%dx%d, %d minions, %d doors, %d keys, gateway %t, actions %s, %d dialogue lines",
		lvl.Width(), lvl.Height(),
		counts[obj.SpawnMinion]+counts[obj.SpawnMinionLeft],
		counts[obj.SpawnDoorClosed]+counts[obj.SpawnDoorLocked],
		counts[obj.SpawnKey],
		counts[obj.SpawnGateway] > 0,
		actions,
		len(lvl.Dialogue()),
	)
}
