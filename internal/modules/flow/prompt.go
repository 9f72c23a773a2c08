package flow

import "fmt"

const (
	listVisibleItemsPrompt = "List all furniture and decor items visible in this room as a JSON array of strings. Only output the JSON array, nothing else."

	clearRoomPrompt = "Generate this same room with all furniture and decor removed. Keep the room structure intact: walls, floors, windows, doors, built-in features. The room should look empty and clean."

	listAddedItemsPrompt = `List every furniture and decor item visible in this furnished room as a JSON array of searchable product descriptions. Be specific (e.g., "mid-century walnut coffee table" not just "coffee table"). Only output the JSON array, nothing else.`
)

func furnishPrompt(style string) string {
	return fmt.Sprintf("Furnish this empty room with the following style: %s. Add appropriate furniture, decor, and accessories that match this style. Make it look like a professionally designed, lived-in space.", style)
}

func clearRegionPrompt(r Region) string {
	x, y, w, h := r.Rounded()
	return fmt.Sprintf("Remove all furniture, decor, and items in the rectangular region at coordinates (x:%d, y:%d, width:%d, height:%d). Keep the room structure intact - walls, floors, windows, doors, and built-in features. Keep everything outside this region exactly the same. Leave the area empty and clean.", x, y, w, h)
}

func editPrompt(instruction string) string {
	return fmt.Sprintf("Edit this room image according to the following instruction: %s. Maintain the same overall style, lighting, and perspective. Make the edit look natural and seamlessly integrated.", instruction)
}

func refinePrompt(r Region, replacement string) string {
	x, y, w, h := r.Rounded()
	return fmt.Sprintf("In this room image, there is a region at coordinates (x: %d, y: %d, width: %d, height: %d) that needs to be changed. Replace the item in that region with: %s. Keep everything outside this region exactly the same. Maintain the same lighting, perspective, and style as the rest of the room.", x, y, w, h, replacement)
}
