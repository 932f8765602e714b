package presets

// Default parameter values shared by presets and the pipeline.
const (
	DefaultChaosSteps = 10_000
	DefaultIFSSteps   = 100_000
	DefaultJump       = "1/2"
)

var builtinChaos = []Chaos{
	{Name: "sierpt", Description: "Sierpinski triangle", Polygon: 3, Jump: "1/2", Steps: DefaultChaosSteps},
	{Name: "sierpc", Description: "Sierpinski carpet", Polygon: 4, Jump: "2/3", Midpoints: true, Steps: DefaultChaosSteps},
	{Name: "vicsek", Description: "Vicsek fractal", Polygon: 4, Jump: "2/3", Center: true, Steps: DefaultChaosSteps},
	{Name: "tsquare", Description: "square, never toward the vertex opposite the last", Polygon: 4, Jump: "1/2", Window: 1, Offset: 2, Steps: DefaultChaosSteps},
	{Name: "techs", Description: "square, never the same vertex twice", Polygon: 4, Jump: "1/2", Window: 1, Steps: DefaultChaosSteps},
	{Name: "webs", Description: "square, two-step window shifted back one", Polygon: 4, Jump: "1/2", Window: 2, Offset: -1, Steps: DefaultChaosSteps},
	{Name: "xtreme", Description: "200-gon with center", Polygon: 200, Jump: "7/8", Center: true, Steps: 200_000},
}

var builtinIFS = []IFS{
	{
		Name:        "fern",
		Description: "Barnsley fern",
		Maps: `0, 0, 0, 0.16, 0, 0
0.85, 0.04, -0.04, 0.85, 0, 1.6
0.2, -0.26, 0.23, 0.22, 0, 1.6
-0.15, 0.28, 0.26, 0.24, 0, 0.44`,
		Probabilities: "0.01, 0.85, 0.07, 0.07",
		Mode:          "alternate",
		Steps:         DefaultIFSSteps,
	},
	{
		Name:        "dragon",
		Description: "Heighway-like dragon",
		Maps: `0.824074, 0.281482, -0.212346, 0.864198, -1.882290, -0.110607
0.088272, 0.520988, -0.463889, -0.377778, 0.785360, 8.095795`,
		Probabilities: "0.787473, 0.212527",
		Mode:          "alternate",
		Steps:         DefaultIFSSteps,
	},
	{
		Name:        "spiral",
		Description: "spiral",
		Maps: `0.787879, -0.424242, 0.242424, 0.859848, 1.758647, 1.408065
-0.121212, 0.257576, 0.151515, 0.053030, -6.721654, 1.377236
0.181818, -0.136364, 0.090909, 0.181818, 6.086107, 1.568035`,
		Probabilities: "0.895652, 0.052174, 0.052174",
		Mode:          "alternate",
		Steps:         DefaultIFSSteps,
	},
	{
		Name:        "leaf",
		Description: "maple leaf",
		Maps: `0.14, 0.01, 0, 0.51, -0.08, -1.31
0.43, 0.52, -0.45, 0.50, 1.49, -0.75
0.45, -0.49, 0.47, 0.47, -1.62, -0.74
0.49, 0, 0, 0.51, 0.02, 1.62`,
		Probabilities: "0.10, 0.35, 0.35, 0.20",
		Mode:          "alternate",
		Steps:         DefaultIFSSteps,
	},
	{
		Name:        "xmas",
		Description: "christmas tree",
		Maps: `0, -0.5, 0.5, 0, 0.5, 0
0, 0.5, -0.5, 0, 0.5, 0.5
0.5, 0, 0, 0.5, 0.25, 0.5`,
		Probabilities: "1/3, 1/3, 1/3",
		Mode:          "alternate",
		Steps:         DefaultIFSSteps,
	},
	{
		Name:        "sierpt",
		Description: "Sierpinski triangle as three maps",
		Maps: `0.5, 0, 0, 0, 0.5, 0
0.5, 0, 0.5, 0, 0.5, 0
0.5, 0, 0.25, 0, 0.5, 0.5`,
		Probabilities: "1/3, 1/3, 1/3",
		Mode:          "regular",
		Steps:         DefaultIFSSteps,
	},
}
