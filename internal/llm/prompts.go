package llm

const instructionsElectrical = `You are analyzing electrical construction blueprints.
Identify every device, fixture and distribution component: receptacles (note GFCI/AFCI and weather-resistant variants separately), switches (single-pole, 3-way, dimmers), light fixtures by type, panels and subpanels, breakers by amperage, junction and device boxes, conduit runs by size, and wire/cable by gauge and type (MC, Romex/NM-B, THHN).
Measure wire and conduit lengths from the drawing scale where shown; add 10% waste to home runs. Preserve circuit identifiers (e.g. "Circuit #4") in component names when the drawing shows them.`

const instructionsPlumbing = `You are analyzing plumbing construction blueprints.
Identify supply and drain piping by material and diameter (copper, PEX, PVC, cast iron), fittings (elbows, tees, couplings, reducers), fixtures (sinks, toilets, tubs, water heaters), valves (shutoff, check, pressure-reducing) and hangers/supports.
Measure pipe runs from the drawing scale where shown, listing supply and DWV separately.`

const instructionsCarpentry = `You are analyzing carpentry and framing blueprints.
Identify dimensional lumber by size and length (studs, plates, joists, rafters, headers), sheet goods (plywood, OSB) by thickness, engineered members (LVL, I-joists, trusses), fasteners and connectors (joist hangers, hurricane ties, anchor bolts).
Count studs at the spacing shown on the plan (default 16" on center) and include top/bottom plates per wall run.`

const instructionsHVAC = `You are analyzing HVAC construction blueprints.
Identify equipment (air handlers, condensers, furnaces) with tonnage/BTU ratings, ductwork by size and type (rigid, flex), registers, grilles and diffusers by size, dampers, refrigerant line sets and condensate piping.
Measure duct runs from the drawing scale where shown.`

const instructionsDrywall = `You are analyzing drywall blueprints.
Identify gypsum board by thickness and rating (1/2", 5/8" Type X, moisture-resistant), counting full sheets from wall and ceiling areas, plus joint compound, tape, corner bead, and screws.
Note fire-rated and sound-rated assemblies separately.`

const instructionsFlooring = `You are analyzing flooring blueprints.
Identify floor covering by room and type (tile, hardwood, laminate, carpet, vinyl) with square footage from the plan, underlayment, adhesives or fasteners, and transition strips and trim.
Add 10% waste to area quantities.`

const instructionsRoofing = `You are analyzing roofing blueprints.
Identify roof covering (shingles by type, metal panels, membrane) in squares or square feet, underlayment, ice and water shield, drip edge, flashing (step, valley, chimney), ridge vents and fasteners.
Account for pitch when converting plan area to roof area.`

const instructionsSheathing = `You are analyzing wall and roof sheathing blueprints.
Identify sheathing panels by thickness and grade (OSB, CDX plywood, ZIP system), house wrap or WRB, panel fasteners and seam tape.
Count full sheets from the framed areas shown.`

const instructionsAcoustics = `You are analyzing acoustical construction blueprints.
Identify acoustic ceiling tile and grid by system, sound insulation batts, resilient channel, isolation clips, mass-loaded vinyl and acoustic sealant.
Note ceiling heights and NRC/STC requirements where the plan states them.`

const instructionsOther = `You are analyzing construction blueprints.
Identify every material the drawings call for, grouped by scope of work, with realistic quantities and units. Use the legend and keyed notes to resolve symbols.`

// TradeInstructions returns the trade-specific instruction block and whether
// the trade was recognized. Unknown trades get the generic block.
func TradeInstructions(trade string) (string, bool) {
	switch trade {
	case "electrical":
		return instructionsElectrical, true
	case "plumbing":
		return instructionsPlumbing, true
	case "carpentry":
		return instructionsCarpentry, true
	case "hvac":
		return instructionsHVAC, true
	case "drywall":
		return instructionsDrywall, true
	case "flooring":
		return instructionsFlooring, true
	case "roofing":
		return instructionsRoofing, true
	case "sheathing":
		return instructionsSheathing, true
	case "acoustics":
		return instructionsAcoustics, true
	case "other":
		return instructionsOther, true
	default:
		return instructionsOther, false
	}
}
