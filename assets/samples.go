package assets

import (
	"slices"

	"level-layout/internal/roomtree"
)

func room(tag string, w, h int, children ...roomtree.Room) roomtree.Room {
	return roomtree.Room{Tag: tag, Width: w, Height: h, Children: children}
}

// Samples are built-in room trees shaped like typical extracted pages.
var Samples = map[string]roomtree.Room{
	// landing is a marketing page: hero, three feature cards, footer links.
	"landing": {
		Tag: "body", Width: 16, Height: 10, Background: "rgb(255, 255, 255)",
		Children: []roomtree.Room{
			room("header", 12, 3,
				room("nav", 8, 2),
				room("img", 3, 3),
			),
			{Tag: "section", Width: 14, Height: 8, Background: "rgb(17, 24, 39)", Children: []roomtree.Room{
				room("h1", 10, 2),
				room("p", 8, 3),
				room("a", 4, 2),
			}},
			room("section", 14, 6,
				room("div", 5, 5),
				room("div", 5, 5),
				room("div", 5, 5),
			),
			room("footer", 12, 3,
				room("ul", 4, 4),
				room("ul", 4, 4),
			),
		},
	},

	// blog is an article with a sidebar and comments.
	"blog": {
		Tag: "body", Width: 12, Height: 8,
		Children: []roomtree.Room{
			room("header", 8, 3,
				room("nav", 6, 4),
				room("h1", 4, 2),
			),
			room("main", 14, 10,
				room("article", 9, 6,
					room("p", 3, 2),
					room("p", 3, 2),
					room("blockquote", 4, 3),
					room("pre", 6, 4),
				),
				room("section", 7, 5,
					room("div", 3, 3),
					room("div", 3, 3),
				),
			),
			room("aside", 5, 7,
				room("ul", 3, 4),
			),
			room("footer", 10, 3),
		},
	},

	// deep nests single children eight levels down.
	"deep": room("body", 10, 10,
		room("div", 9, 9,
			room("div", 8, 8,
				room("div", 7, 7,
					room("div", 6, 6,
						room("div", 5, 5,
							room("div", 4, 4,
								room("span", 3, 3),
							),
						),
					),
				),
			),
		),
	),
}

// SampleNames returns the keys of Samples in sorted order.
func SampleNames() []string {
	names := make([]string, 0, len(Samples))
	for name := range Samples {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
