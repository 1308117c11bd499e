package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"blackjack-server/internal/config"
	"blackjack-server/internal/util"
	"blackjack-server/pkg/blackjack"
	"blackjack-server/pkg/token"
)

// terminal plays both roles: it is the messenger for every seated player and
// the broadcaster for the table
type terminal struct {
	in *bufio.Reader
}

func (t *terminal) Prompt(_ context.Context, text string) (string, error) {
	fmt.Println(text)

	line, err := t.in.ReadString('\n')
	if err != nil {
		return "", blackjack.ErrGone
	}

	return strings.TrimSpace(line), nil
}

func (t *terminal) Send(text string) {
	fmt.Println(text)
}

func (t *terminal) Broadcast(text string) {
	fmt.Println(text)
}

func main() {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		logrus.Fatal("stdin is not a terminal")
	}

	logrus.SetLevel(logrus.WarnLevel)

	t := &terminal{in: bufio.NewReader(os.Stdin)}

	opts := blackjack.DefaultOptions()
	opts.DealerStandsAt = config.Instance().Game.DealerStandsAt

	game := blackjack.NewGame(logrus.StandardLogger(), t, opts)

	for i, n := 1, readPlayerCount(t); i <= n; i++ {
		addPlayer(t, game)
	}

	for len(game.Players()) > 0 {
		if err := game.PlayRound(context.Background()); err != nil {
			logrus.WithError(err).Fatal("round aborted")
		}

		for _, p := range game.Players() {
			if p.Balance() == 0 {
				p.Send("You don't have any money left. Reconnect to play again.")
				game.RemovePlayer(p.ID)
			}
		}
	}

	fmt.Println("Game over")
}

func readPlayerCount(t *terminal) int {
	for {
		line, err := t.Prompt(context.Background(), "Enter number of players: ")
		if err != nil {
			logrus.Fatal("could not read from stdin")
		}

		n, err := strconv.Atoi(line)
		if err != nil || n <= 0 {
			fmt.Println("Enter a positive integer!")
			continue
		}

		return n
	}
}

func addPlayer(t *terminal, game *blackjack.Game) {
	name, err := t.Prompt(context.Background(), "Enter players name: ")
	if err != nil {
		logrus.Fatal("could not read from stdin")
	}

	if name == "" {
		name = util.GetRandomName()
	}

	money := readMoney(t, name)

	id, err := token.Generate(8)
	if err != nil {
		logrus.WithError(err).Fatal("could not generate player id")
	}

	game.AddPlayer(blackjack.NewParticipant(id, name, money, t, logrus.StandardLogger()))
}

func readMoney(t *terminal, name string) int {
	for {
		line, err := t.Prompt(context.Background(), fmt.Sprintf("%s - How much money do you have?", name))
		if err != nil {
			logrus.Fatal("could not read from stdin")
		}

		money, err := strconv.Atoi(line)
		if err != nil || money < 0 {
			fmt.Println("Enter a positive number!!")
			continue
		}

		return money
	}
}
