package parse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tmaxa/partscript/internal/rule"
)

var turnModes = map[string]bool{
	"on": true, "off": true,
	"visible": true, "invisible": true,
	"collidable": true, "uncollidable": true,
}

var dialogActions = map[string]rule.Dialog{
	"show_board":              rule.DialogForum,
	"show_thread":             rule.DialogForumThread,
	"show_areas":              rule.DialogFindAreas,
	"show_inventory":          rule.DialogInventory,
	"show_chat_keyboard":      rule.DialogKeyboard,
	"show_video_controls":     rule.DialogVideoControl,
	"show_camera_controls":    rule.DialogCameraControl,
	"show_slideshow_controls": rule.DialogSlideshowControl,
}

var rightActions = map[string]rule.Right{
	"emitted_climbing":             rule.RightEmittedClimbing,
	"emitted_transporting":         rule.RightEmittedTransporting,
	"invisibility":                 rule.RightInvisibility,
	"any_person_size":              rule.RightAnyPersonSize,
	"highlighting":                 rule.RightHighlighting,
	"amplified_speech":             rule.RightAmplifiedSpeech,
	"any_destruction":              rule.RightAnyDestruction,
	"web_browsing":                 rule.RightWebBrowsing,
	"untargeted_attract_and_repel": rule.RightUntargetedAttract,
	"build_animations":             rule.RightBuildAnimations,
}

var resetActions = map[string]rule.ResetTarget{
	"reset_area":                 rule.ResetArea,
	"reset_persons":              rule.ResetPersons,
	"reset_position":             rule.ResetPosition,
	"reset_rotation":             rule.ResetRotation,
	"reset_body":                 rule.ResetBody,
	"reset_legs_to_default":      rule.ResetLegsDefault,
	"reset_legs_to_body_default": rule.ResetLegsBodyDefault,
}

var faceActions = map[string]rule.Face{
	"all_parts_face_someone":               {Target: rule.FaceClosestPerson},
	"all_parts_face_someone_else":          {Target: rule.FaceSecondClosestPerson},
	"all_parts_face_up":                    {Target: rule.FaceUp},
	"all_parts_face_empty_hand":            {Target: rule.FaceClosestEmptyHand},
	"all_parts_face_empty_hand_while_held": {Target: rule.FaceClosestEmptyHandWhileHeld},
	"all_parts_face_view":                  {Target: rule.FaceMainCamera},
	"stop_all_parts_face_someone":          {Target: rule.FaceClosestPerson, Stop: true},
	"stop_all_parts_face_up":               {Target: rule.FaceUp, Stop: true},
	"stop_all_parts_face_empty_hand":       {Target: rule.FaceClosestEmptyHand, Stop: true},
	"stop_all_parts_face_nearest":          {Target: rule.FaceClosestThingOfName, Stop: true},
	"stop_all_parts_face_view":             {Target: rule.FaceMainCamera, Stop: true},
}

var tellActions = map[string]rule.TellVia{
	"tell":                rule.TellSelf,
	"tell_nearby":         rule.TellNearby,
	"tell_any":            rule.TellAny,
	"tell_body":           rule.TellBody,
	"tell_first_of_any":   rule.TellFirstOfAny,
	"tell_in_front":       rule.TellInFront,
	"tell_first_in_front": rule.TellFirstInFront,
}

var cameraPositions = map[string]rule.CameraPosition{
	"default":                    rule.CameraInHeadVR,
	"optimized view":             rule.CameraInHeadOptimized,
	"view from behind me":        rule.CameraBehindUp,
	"view from further behind me": rule.CameraFurtherBehindUp,
	"bird's eye":                 rule.CameraBirdsEye,
	"looking at me":              rule.CameraLooksAtMe,
	"left hand":                  rule.CameraAtLeftHand,
	"right hand":                 rule.CameraAtRightHand,
}

var cameraFollowLerps = map[string]float64{
	"default":       1,
	"smoothly":      0.025,
	"very smoothly": 0.0075,
	"none":          0,
}

// settingNames is the closed vocabulary of toggleable user settings,
// keyed by their normalized space-and-case-free form.
var settingNames = map[string]string{
	"microphone":              "Microphone",
	"seeinvisible":            "SeeInvisible",
	"touchuncollidable":       "TouchUncollidable",
	"lowergraphicsquality":    "LowerGraphicsQuality",
	"fly":                     "Fly",
	"findable":                "Findable",
	"stopalerts":              "StopAlerts",
	"showgrid":                "ShowGrid",
	"snapthingstogrid":        "SnapThingsToGrid",
	"snapangles":              "SnapAngles",
	"softsnapangles":          "SoftSnapAngles",
	"lockangles":              "LockAngles",
	"snapposition":            "SnapPosition",
	"lockposition":            "LockPosition",
	"scaleallparts":           "ScaleAllParts",
	"scaleeachpartuniformly":  "ScaleEachPartUniformly",
	"finetuneposition":        "FinetunePosition",
	"symmetrysideways":        "SymmetrySideways",
	"symmetryvertical":        "SymmetryVertical",
	"symmetrydepth":           "SymmetryDepth",
	"extraeffectsinvr":        "ExtraEffectsInVr",
	"snapthingangles":         "SnapThingAngles",
	"snapthingposition":       "SnapThingPosition",
	"ignorethingsnapping":     "IgnoreThingSnapping",
}

// parseActions turns one then-sentence into actions. Most keywords yield
// exactly one action; malformed arguments yield none. The tell-web
// keywords on old-format objects expand to two compatibility tells.
func parseActions(words []string, thenPart string, ctx Context, event rule.EventKind) []rule.Action {
	data := ""
	if len(words) >= 2 {
		data = strings.Join(words[1:], " ")
	}

	keyword := words[0]

	if via, ok := tellActions[keyword]; ok {
		if data == "" {
			return nil
		}
		return []rule.Action{rule.Tell{Via: via, Data: data}}
	}
	if dialog, ok := dialogActions[keyword]; ok {
		act := rule.ShowDialog{Dialog: dialog}
		switch keyword {
		case "show_board", "show_thread", "show_areas":
			act.Data = data
		}
		return one(act)
	}
	if name, found := strings.CutPrefix(keyword, "allow_"); found {
		if right, ok := rightActions[name]; ok {
			return one(rule.Rights{Right: right, Allow: true})
		}
	}
	if name, found := strings.CutPrefix(keyword, "disallow_"); found {
		if right, ok := rightActions[name]; ok {
			return one(rule.Rights{Right: right, Allow: false})
		}
	}
	if target, ok := resetActions[keyword]; ok {
		return one(rule.Reset{Target: target})
	}
	if face, ok := faceActions[keyword]; ok {
		return one(face)
	}

	switch keyword {
	case "become", "become_untweened", "become_unsoftened", "become_soft_start", "become_soft_end":
		return parseBecome(keyword, words, thenPart)

	case "emit", "emit_gravity_free":
		return parseEmit(keyword, thenPart, ctx)

	case "propel_forward":
		return one(rule.PropelForward{Percent: withPercent(words)})

	case "rotate_forward":
		return one(rule.RotateForward{Percent: withPercent(words)})

	case "tell_web", "tell_any_web":
		if data == "" {
			return nil
		}
		if ctx.Version >= 6 {
			via := rule.TellWeb
			if keyword == "tell_any_web" {
				via = rule.TellAnyWeb
			}
			return one(rule.Tell{Via: via, Data: data})
		}
		// Old-format objects predate dedicated web tells; they relied on
		// two self/any tells carrying a "web" marker.
		via := rule.TellSelf
		if keyword == "tell_any_web" {
			via = rule.TellAny
		}
		return []rule.Action{
			rule.Tell{Via: via, Data: "web" + data},
			rule.Tell{Via: via, Data: "web " + data},
		}

	case "play":
		if data == "" {
			return nil
		}
		return one(rule.PlaySound{Sound: parseSound(data)})

	case "send_all_to", "send_nearby_to", "send_one_nearby_to":
		return parseSendTo(keyword, data)

	case "send_all_onto", "send_nearby_onto", "send_one_nearby_onto":
		if data == "" {
			return nil
		}
		rotation, data := extractDegrees(data)
		return one(rule.Send{
			OntoThing:      data,
			RotationAfter:  rotation,
			NearbyOnly:     keyword != "send_all_onto",
			MultiplePeople: keyword != "send_one_nearby_onto",
		})

	case "call_me":
		if data == "" {
			return nil
		}
		for _, reserved := range []string{";", ",", "|", "^"} {
			data = strings.ReplaceAll(data, reserved, " ")
		}
		return one(rule.CallMe{Name: data})

	case "loop":
		if data == "" {
			return nil
		}
		return one(parseLoop(data))

	case "end_loop":
		return one(rule.EndLoop{})

	case "all_parts_face_nearest":
		if data == "" {
			return nil
		}
		return one(rule.Face{Target: rule.FaceClosestThingOfName, ThingName: data})

	case "destroy_all_parts":
		return one(rule.DestroySelf{Destruction: parseDestruction(words)})

	case "destroy_nearby":
		return one(rule.DestroyNearby{Destruction: parseOtherDestruction(words)})

	case "give_haptic_feedback":
		return one(rule.HapticFeedback{})

	case "show_name_tags":
		seconds := 30.0
		if data != "" {
			if n, err := strconv.Atoi(strings.ReplaceAll(data, "s", "")); err == nil {
				seconds = clamp(float64(n), 0.1, 24*60*60)
			}
		}
		return one(rule.ShowNameTags{Seconds: seconds})

	case "do_creation_part", "do_all_creation_parts":
		return parseCreationPart(keyword, thenPart)

	case "go_to_inventory_page":
		if len(words) == 2 {
			if n, err := strconv.Atoi(words[1]); err == nil {
				return one(rule.InventoryPage{Page: clampInt(n, 1, rule.MaxInventoryPages)})
			}
		}
		return nil

	case "add_crumbles":
		return one(rule.Crumbles{})

	case "add_crumbles_for_all_parts":
		return one(rule.Crumbles{AllParts: true})

	case "set_light_intensity", "set_light_range", "set_light_cone_size":
		return parseLight(keyword, words, event)

	case "set_run_speed":
		return parseMovement(rule.MovementRunSpeed, words)

	case "set_jump_speed":
		return parseMovement(rule.MovementJumpSpeed, words)

	case "set_slidiness":
		return parseMovement(rule.MovementSlidiness, words)

	case "set_speed":
		return parseSpeed(rule.SpeedSet, words, -1000, 1000)

	case "add_speed":
		return parseSpeed(rule.SpeedAdd, words, -1000, 1000)

	case "multiply_speed":
		return parseSpeed(rule.SpeedMultiply, words, 0, 1000)

	case "set_camera_position_to":
		if position, ok := cameraPositions[data]; ok {
			return one(rule.SetCameraPosition{Position: position})
		}
		return nil

	case "set_camera_following_to":
		if lerp, ok := cameraFollowLerps[data]; ok {
			return one(rule.SetCameraFollowing{Lerp: lerp})
		}
		return nil

	case "type":
		data = strings.ReplaceAll(data, `"`, "")
		data = strings.ReplaceAll(data, "_", " ")
		if data == "" {
			return nil
		}
		return one(rule.TypeText{Text: data})

	case "change_head_to", "change_heads_to", "attach_head":
		if data == "" {
			return nil
		}
		data = strings.TrimSpace(replaceIncludedNamesInData(ctx.IncludedNameIDs, data))
		if data == "" {
			return nil
		}
		return one(rule.AttachHead{ThingID: data})

	case "resize_nearby_to":
		return parseResize(data)

	case "let_go":
		return one(rule.LetGo{})

	case "stream_to":
		if data == "" {
			return nil
		}
		return one(rule.Stream{Start: true, TargetName: data})

	case "stream_stop":
		return one(rule.Stream{Start: false})

	case "say":
		return one(rule.Say{Text: strings.TrimSpace(strings.ReplaceAll(data, `"`, " "))})

	case "set_voice":
		if data == "" {
			return nil
		}
		return one(rule.SetVoice{Voice: parseVoice(data)})

	case "set_snap_angles_to":
		if data == "" {
			return nil
		}
		if data == "default" {
			return one(rule.SnapAngles{Degrees: 0})
		}
		if angle, err := strconv.ParseFloat(data, 64); err == nil {
			return one(rule.SnapAngles{Degrees: clamp(angle, 0, 360)})
		}
		return nil

	case "play_track":
		if data == "" {
			return nil
		}
		return one(rule.PlayTrack{Data: data})

	case "set_gravity_to":
		return parseGravity(data)

	case "is":
		if data == "" {
			return nil
		}
		return one(rule.SetVariable{Expr: data})

	case "write":
		text := strings.TrimSpace(strings.ReplaceAll(data, `"`, " "))
		if text == strings.ToLower(text) {
			text = strings.ToUpper(text)
		}
		return one(rule.WriteText{Text: text})

	case "turn":
		if len(words) >= 2 && turnModes[words[1]] {
			return one(rule.Turn{Scope: rule.TurnPart, Mode: words[1]})
		}
		return nil

	case "turn_thing":
		if len(words) >= 2 && turnModes[words[1]] {
			return one(rule.Turn{Scope: rule.TurnThing, Mode: words[1]})
		}
		return nil

	case "turn_sub_thing":
		if len(words) >= 2 && turnModes[words[len(words)-1]] {
			act := rule.Turn{Scope: rule.TurnSubThing, Mode: words[len(words)-1]}
			if len(words) >= 3 {
				act.SubName = strings.Join(words[1:len(words)-1], " ")
			}
			return one(act)
		}
		return nil

	case "trail_start":
		return one(parseTrailStart(thenPart))

	case "trail_end":
		return one(rule.Trail{Start: false})

	case "project":
		return one(parseProject(thenPart))

	case "set_area_visibility_to":
		if data == "default" {
			return one(rule.AreaVisibility{Meters: -1})
		}
		if meters, err := strconv.ParseFloat(strings.ReplaceAll(data, "m", ""), 64); err == nil {
			return one(rule.AreaVisibility{Meters: clamp(meters, 2.5, 10000)})
		}
		return nil

	case "set_person_as_authority":
		return one(rule.PersonAuthority{})

	case "show_line":
		return one(parseShowLine(thenPart))

	case "show_video":
		return parseShowVideo(words, data)

	case "show_web":
		return parseShowWeb(words, thenPart)

	case "set_constant_rotation_to":
		if len(words) != 4 {
			return nil
		}
		vec := rule.Vec3{
			X: floatOrZero(words[1], 10000),
			Y: floatOrZero(words[2], 10000),
			Z: floatOrZero(words[3], 10000),
		}
		if ctx.Version <= 6 {
			vec.X *= 10
			vec.Y *= 10
			vec.Z *= 10
		}
		return one(rule.ConstantRotation{Vec: vec})

	case "set_quest_achieve", "set_quest_unachieve", "set_quest_remove":
		if data == "" {
			return nil
		}
		op := rule.QuestAchieve
		switch keyword {
		case "set_quest_unachieve":
			op = rule.QuestUnachieve
		case "set_quest_remove":
			op = rule.QuestRemove
		}
		return one(rule.Quest{Name: strings.ToLower(strings.TrimSpace(data)), Op: op})

	case "enable_setting", "disable_setting":
		if data == "" {
			return nil
		}
		joined := strings.ReplaceAll(data, " ", "")
		canonical, ok := settingNames[joined]
		if !ok {
			return nil
		}
		return one(rule.SettingToggle{Setting: canonical, Enable: keyword == "enable_setting"})

	case "set_attract", "set_repel":
		return parseAttractRepel(keyword, data)
	}

	return nil
}

func one(act rule.Action) []rule.Action { return []rule.Action{act} }

func parseBecome(keyword string, words []string, thenPart string) []rule.Action {
	act := rule.Become{Target: -1, ViaState: -1}

	switch keyword {
	case "become_untweened":
		act.Tween = rule.TweenDirect
	case "become_unsoftened":
		act.Tween = rule.TweenSteady
	case "become_soft_start":
		act.Tween = rule.TweenEaseIn
	case "become_soft_end":
		act.Tween = rule.TweenEaseOut
	}

	minSeconds := rule.MinStateSeconds
	if act.Tween == rule.TweenDirect {
		minSeconds = 0
	}

	if before, after, found := strings.Cut(thenPart, " via "); found && !strings.Contains(after, " via ") {
		words = strings.Fields(before)
		if via, err := strconv.Atoi(after); err == nil && via >= 1 && via <= rule.MaxPartStates+1 {
			act.ViaState = via - 1
		}
	}

	if len(words) == 4 && words[2] == "in" {
		setBecomeTarget(&act, words[1])
		if seconds, err := strconv.ParseFloat(strings.ReplaceAll(words[3], "s", ""), 64); err == nil {
			act.Seconds = seconds
		}
	} else if len(words) == 2 {
		setBecomeTarget(&act, words[1])
		act.Seconds = minSeconds
	}

	act.Seconds = clamp(act.Seconds, minSeconds, rule.MaxStateSeconds)
	if act.Target < 0 && act.Relative == rule.RelativeNone {
		return nil
	}
	return one(act)
}

func setBecomeTarget(act *rule.Become, word string) {
	switch word {
	case "current":
		act.Relative = rule.RelativeCurrent
	case "previous":
		act.Relative = rule.RelativePrevious
	case "next":
		act.Relative = rule.RelativeNext
	default:
		if n, err := strconv.Atoi(word); err == nil {
			act.Target = n - 1
		}
	}
}

func parseEmit(keyword string, thenPart string, ctx Context) []rule.Action {
	thenPart = replaceIncludedNames(ctx.IncludedNameIDs, thenPart)
	words := strings.Fields(thenPart)

	act := rule.Emit{GravityFree: keyword == "emit_gravity_free"}
	if len(words) == 4 && words[2] == "with" {
		act.ThingID = words[1]
		if percent, err := strconv.ParseFloat(strings.ReplaceAll(words[3], "%", ""), 64); err == nil {
			act.VelocityPercent = clamp(percent, 0, 100)
		}
	} else if len(words) == 2 {
		act.ThingID = words[1]
		act.VelocityPercent = 100
	}
	if act.ThingID == "" {
		return nil
	}
	return one(act)
}

// withPercent reads the "with N" argument of propel and rotate forward,
// defaulting to a gentle 10 percent push.
func withPercent(words []string) float64 {
	if len(words) == 3 && words[1] == "with" {
		if percent, err := strconv.ParseFloat(words[2], 64); err == nil {
			return clamp(percent, -100, 100)
		}
	}
	return 10
}

func parseLoop(data string) rule.LoopSound {
	act := rule.LoopSound{Name: data, Volume: 1, SpatialBlend: 1}

	name, props, found := strings.Cut(data, " with ")
	if !found {
		return act
	}
	act.Name = name
	for _, property := range strings.Fields(props) {
		switch property {
		case "surround":
			act.SpatialBlend = 0
		case "half-surround":
			act.SpatialBlend = 0.5
		default:
			property = strings.ReplaceAll(property, "%", "")
			if volume, err := strconv.ParseFloat(property, 64); err == nil {
				act.Volume = clamp(volume/100, rule.MinRelativeSoundVolume, rule.MaxRelativeSoundVolume)
			}
		}
	}
	return act
}

func parseCreationPart(keyword, thenPart string) []rule.Action {
	act := rule.CreationPart{ForAll: keyword == "do_all_creation_parts"}

	if strings.Contains(thenPart, " local ") {
		thenPart = strings.ReplaceAll(thenPart, " local ", " ")
		act.Local = true
	}
	if strings.Contains(thenPart, " random ") {
		thenPart = strings.ReplaceAll(thenPart, " random ", " ")
		act.Random = true
	}

	words := strings.Fields(thenPart)
	if len(words) < 2 {
		return nil
	}
	act.Mode = words[1]
	for _, word := range words[2:] {
		value := 0.0
		if v, err := strconv.ParseFloat(word, 64); err == nil && v >= -1000 && v <= 1000 {
			value = v
		}
		act.Values = append(act.Values, value)
	}
	return one(act)
}

// parseLight handles the light directives, which only make sense as
// initial state and are ignored on any other trigger.
func parseLight(keyword string, words []string, event rule.EventKind) []rule.Action {
	if event != rule.OnStarts || len(words) < 2 {
		return nil
	}
	value, err := strconv.ParseFloat(words[1], 64)
	if err != nil {
		return nil
	}
	switch keyword {
	case "set_light_intensity":
		return one(rule.Light{Param: rule.LightIntensity, Value: clamp(value, 0, 100) * 0.01})
	case "set_light_range":
		return one(rule.Light{Param: rule.LightRange, Value: clamp(value, 0, 1000)})
	default:
		return one(rule.Light{Param: rule.LightConeSize, Value: clamp(value, 0, 100) * 0.01})
	}
}

func parseMovement(param rule.MovementParam, words []string) []rule.Action {
	if len(words) != 2 {
		return nil
	}
	if words[1] == "default" {
		return one(rule.Movement{Param: param, Default: true})
	}
	value, err := strconv.ParseFloat(words[1], 64)
	if err != nil {
		return nil
	}
	return one(rule.Movement{Param: param, Value: clamp(value, 0, 100)})
}

func parseSpeed(op rule.SpeedOp, words []string, min, max float64) []rule.Action {
	var vec rule.Vec3
	switch len(words) {
	case 2:
		n, err := strconv.ParseFloat(words[1], 64)
		if err != nil {
			return nil
		}
		vec = rule.Vec3{X: n, Y: n, Z: n}
	case 4:
		x, errX := strconv.ParseFloat(words[1], 64)
		y, errY := strconv.ParseFloat(words[2], 64)
		z, errZ := strconv.ParseFloat(words[3], 64)
		if errX != nil || errY != nil || errZ != nil {
			return nil
		}
		vec = rule.Vec3{X: x, Y: y, Z: z}
	default:
		return nil
	}
	vec.X = clamp(vec.X, min, max)
	vec.Y = clamp(vec.Y, min, max)
	vec.Z = clamp(vec.Z, min, max)
	return one(rule.SpeedChange{Op: op, Vec: vec})
}

func parseResize(data string) []rule.Action {
	percent, err := strconv.ParseFloat(strings.ReplaceAll(data, "%", ""), 64)
	if err != nil {
		return nil
	}
	if percent < 10 || percent > 400 {
		return nil
	}
	// A change this close to 1x reads as nothing happening at all.
	subtle := percent != 100 && abs(100-percent) < 10
	if subtle {
		return nil
	}
	return one(rule.ResizeNearby{Factor: percent * 0.01})
}

func parseGravity(data string) []rule.Action {
	if data == "" {
		return nil
	}
	if data == "default" {
		return one(rule.SetGravity{Default: true})
	}
	words := strings.Fields(data)
	if len(words) != 3 {
		return nil
	}
	x, errX := strconv.ParseFloat(words[0], 64)
	y, errY := strconv.ParseFloat(words[1], 64)
	z, errZ := strconv.ParseFloat(words[2], 64)
	if errX != nil || errY != nil || errZ != nil {
		return nil
	}
	const maxGravity = 100.0
	return one(rule.SetGravity{Vec: rule.Vec3{
		X: clamp(x, -maxGravity, maxGravity),
		Y: clamp(y, -maxGravity, maxGravity),
		Z: clamp(z, -maxGravity, maxGravity),
	}})
}

func parseTrailStart(thenPart string) rule.Trail {
	act := rule.Trail{Start: true}
	_, params, found := strings.Cut(thenPart, " with ")
	if !found {
		return act
	}
	for _, param := range strings.Fields(params) {
		switch param {
		case "thick-start":
			act.ThickStart = true
		case "thick-end":
			act.ThickEnd = true
		default:
			seconds := strings.ReplaceAll(param, "s", "")
			if duration, err := strconv.ParseFloat(seconds, 64); err == nil {
				act.DurationSeconds = clamp(duration, 0.01, rule.MaxTrailDurationSeconds)
			}
		}
	}
	return act
}

func parseProject(thenPart string) rule.Project {
	act := rule.Project{}
	_, paramText, found := strings.Cut(thenPart, " with ")
	if !found {
		return act
	}
	params := strings.Fields(paramText)
	for i, param := range params {
		previous := ""
		if i >= 1 {
			previous = params[i-1]
		}
		switch param {
		case "reach":
			if percent, err := strconv.ParseFloat(strings.ReplaceAll(previous, "%", ""), 64); err == nil {
				act.RelativeReach = clamp(percent, 0, 1000) * 0.01
			}
		case "default":
			if distance, err := strconv.ParseFloat(strings.ReplaceAll(previous, "%", ""), 64); err == nil {
				act.DefaultDistance = clamp(distance, 0, 1000)
			}
		case "max":
			if distance, err := strconv.ParseFloat(strings.ReplaceAll(previous, "%", ""), 64); err == nil {
				act.MaxDistance = clamp(distance, 0.01, 10000)
			}
		case "alignment":
			act.Align = rule.ProjectAlignTowardsSurface
		case "counter-alignment":
			act.Align = rule.ProjectAlignAwayFromSurface
		}
	}
	return act
}

func parseShowLine(thenPart string) rule.ShowLine {
	act := rule.ShowLine{}
	_, paramText, found := strings.Cut(thenPart, " with ")
	if !found {
		return act
	}
	params := strings.Fields(paramText)
	for i, param := range params {
		previous := ""
		if i >= 1 {
			previous = params[i-1]
		}
		width, err := strconv.ParseFloat(previous, 64)
		if err != nil {
			continue
		}
		width = clamp(width, 0, rule.MaxLineWidth)
		switch param {
		case "width":
			act.StartWidth = width
			act.EndWidth = width
		case "start-width":
			act.StartWidth = width
		case "end-width":
			act.EndWidth = width
		}
	}
	return act
}

var videoLinkPattern = regexp.MustCompile(`\[youtube:\s*([^\]]+)\]`)

func parseShowVideo(words []string, data string) []rule.Action {
	match := videoLinkPattern.FindStringSubmatch(data)
	if match == nil {
		return nil
	}
	act := rule.ShowVideo{VideoID: strings.TrimSpace(match[1])}
	if strings.Contains(data, " with ") {
		for _, word := range words {
			word = strings.ReplaceAll(word, "%", "")
			if percent, err := strconv.ParseFloat(word, 64); err == nil {
				act.Volume = clamp(percent*0.01, 0, 3)
			}
		}
	}
	return one(act)
}

func parseShowWeb(words []string, thenPart string) []rule.Action {
	if len(words) < 2 {
		return nil
	}
	url := words[1]
	if !strings.Contains(url, "://") {
		url = "http://" + url
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return nil
	}

	act := rule.ShowWeb{
		URL:            url,
		AllowNavigate:  true,
		AllowCursor:    true,
		SyncURLChanges: true,
	}
	_, paramText, found := strings.Cut(thenPart, " with ")
	if found {
		params := strings.Fields(paramText)
		for i, param := range params {
			previous := ""
			if i >= 1 {
				previous = params[i-1]
			}
			switch param {
			case "zoom":
				if percent, err := strconv.ParseFloat(strings.ReplaceAll(previous, "%", ""), 64); err == nil {
					act.ZoomPercent = clamp(percent, 1, 1000)
				}
			case "navigation-free":
				act.AllowNavigate = false
			case "cursor-free":
				act.AllowCursor = false
			case "useJoystick":
				act.UseJoystick = true
			case "unsynced":
				act.SyncURLChanges = false
			}
		}
	}
	return one(act)
}

func parseAttractRepel(keyword, data string) []rule.Action {
	if data == "" {
		return nil
	}
	act := rule.AttractRepel{}
	for _, part := range strings.Fields(data) {
		if strength, err := strconv.ParseFloat(part, 64); err == nil {
			if keyword == "set_repel" {
				strength = -strength
			}
			act.Strength = clamp(strength, -rule.MaxAttractStrength, rule.MaxAttractStrength)
		} else if part == "forward-only" {
			act.ForwardOnly = true
		} else if part != "*" {
			act.NameFilter = part
		}
	}
	return one(act)
}

// extractDegrees finds an " at N degrees" clause (N a multiple of 45 in
// [-360, 360]), removes it from the text and returns the angle. 360
// normalizes to 0.
func extractDegrees(s string) (float64, string) {
	for degrees := -360; degrees <= 360; degrees += 45 {
		clause := " at " + strconv.Itoa(degrees) + " degrees"
		if strings.Contains(s, clause) {
			s = strings.ReplaceAll(s, clause, " ")
			s = strings.ReplaceAll(s, "  ", " ")
			s = strings.TrimSpace(s)
			if degrees == 360 {
				return 0, s
			}
			return float64(degrees), s
		}
	}
	return 0, s
}

func parseSendTo(keyword, data string) []rule.Action {
	if data == "" {
		return nil
	}
	act := rule.Send{
		NearbyOnly:     keyword != "send_all_to",
		MultiplePeople: keyword != "send_one_nearby_to",
	}
	act.RotationAfter, data = extractDegrees(data)

	if area, onto, found := strings.Cut(data, " onto "); found {
		act.ToArea = area
		if onto != "" {
			act.OntoThing = onto
			// "onto marker via 5s limbo" moves the via clause to the area.
			if thing, via, hasVia := strings.Cut(act.OntoThing, " via "); hasVia {
				act.OntoThing = thing
				if act.ToArea != "" {
					act.ToArea += " via " + via
				}
			}
		}
	} else {
		act.ToArea = data
	}

	if area, viaText, found := strings.Cut(act.ToArea, " via "); found && area != "" && viaText != "" {
		viaWords := strings.Fields(viaText)
		if len(viaWords) >= 2 {
			secondsText := strings.ReplaceAll(viaWords[0], "s", "")
			if seconds, err := strconv.ParseFloat(secondsText, 64); err == nil {
				viaArea := strings.Join(viaWords[1:], " ")
				if viaArea != "" {
					act.ToArea = area
					act.ViaArea = viaArea
					act.ViaSeconds = clamp(seconds, rule.MinTransitSeconds, rule.MaxTransitSeconds)
				}
			}
		}
	}
	return one(act)
}

// replaceIncludedNames swaps an emit alias for its real id, accepting the
// substitution only when the result still has a valid emit shape. Longer
// aliases are tried first so prefixes of other aliases cannot shadow them.
func replaceIncludedNames(nameIDs map[string]string, text string) string {
	for _, name := range namesByLengthDesc(nameIDs) {
		replaced := strings.ReplaceAll(text, name, nameIDs[name])
		if replaced == text {
			continue
		}
		words := strings.Fields(replaced)
		if (len(words) == 4 && words[2] == "with") || len(words) == 2 {
			return replaced
		}
	}
	return text
}

func replaceIncludedNamesInData(nameIDs map[string]string, data string) string {
	for _, name := range namesByLengthDesc(nameIDs) {
		data = strings.ReplaceAll(data, name, nameIDs[name])
	}
	return data
}

func namesByLengthDesc(nameIDs map[string]string) []string {
	names := make([]string, 0, len(nameIDs))
	for name := range nameIDs {
		names = append(names, name)
	}
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && len(names[j]) > len(names[j-1]); j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
	return names
}

func floatOrZero(s string, max float64) float64 {
	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	if max != 0 {
		value = clamp(value, -max, max)
	}
	return value
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
