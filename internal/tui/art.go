package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/lemonade/internal/lemonade"
)

var pictures = map[lemonade.Image]string{
	lemonade.ImageLemonTree: `
     .-~~~~-.
   .( o  @   ).
  (  @   o  @  )
   ( o  @  o  )
    '-.__|__.-'
        |||
        |||
     ___|||___`,
	lemonade.ImageLemonSqueeze: `
    _.----._
  .'  .  .  '.
 (  .  .  .  .)
  '.  .  .  .'
    '-.____.-'`,
	lemonade.ImageLemonDrink: `
  .-------.
  |~~~~~~~|
  |:::::::|
  |:::::::|
   \:::::/
    '---'`,
	lemonade.ImageLemonRestart: `
  .-------.
  |       |
  |       |
  |       |
   \     /
    '---'`,
}

var pictureStyles = map[lemonade.Image]lipgloss.Style{
	lemonade.ImageLemonTree:    treeStyle,
	lemonade.ImageLemonSqueeze: lemonStyle,
	lemonade.ImageLemonDrink:   drinkStyle,
	lemonade.ImageLemonRestart: glassStyle,
}

// picture returns the styled lines of img, or nil for an unknown image.
func picture(img lemonade.Image) []string {
	art, ok := pictures[img]
	if !ok {
		return nil
	}
	lines := strings.Split(strings.TrimPrefix(art, "\n"), "\n")
	style := pictureStyles[img]
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = style.Render(l)
	}
	return out
}
