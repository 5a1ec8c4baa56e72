package detect

// HasTestFunction reports whether any function in the member tree, at any depth, carries marker.
func HasTestFunction(members []Member, marker string) bool {
	for _, member := range members {
		if member.Kind == MemberFunction && member.HasMarker(marker) {
			return true
		}

		if HasTestFunction(member.Members, marker) {
			return true
		}
	}

	return false
}
