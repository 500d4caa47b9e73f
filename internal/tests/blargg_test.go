package tests

import "path/filepath"

// blarggSteps is enough for the slowest of the individual
// cpu_instrs ROMs to report.
const blarggSteps = 50_000_000

func testBlargg(table *TestTable) {
	tS := table.NewTestSuite("blargg")

	cpuInstrs := tS.NewTestCollection("cpu_instrs")
	for _, name := range []string{
		"01-special",
		"03-op sp,hl",
		"04-op r,imm",
		"05-op rp",
		"06-ld r,r",
		"07-jr,jp,call,ret,rst",
		"08-misc instrs",
		"09-op r,r",
		"10-bit ops",
		"11-op a,(hl)",
	} {
		cpuInstrs.Add(&serialTest{
			romPath:  filepath.Join("blargg", "cpu_instrs", "individual", name+".gb"),
			name:     name,
			expected: "Passed",
			maxSteps: blarggSteps,
		})
	}
}
