package host

import "strings"

// PHP evaluated by `wp eval`. Every snippet receives its input as base64
// JSON in $in and answers with one line: {"ok":true,"data":...} or
// {"errors":[...]}.

const snippetPrelude = `
$in = json_decode(base64_decode('%INPUT%'), true);
$unyson_cli_answer = function ($r, $data = null) {
	if ($r === true) {
		echo json_encode(array('ok' => true, 'data' => $data)), "\n";
		return;
	}
	$m = array();
	foreach ((is_array($r) ? $r : array($r)) as $e) {
		$m[] = is_wp_error($e) ? $e->get_error_message() : (string) $e;
	}
	echo json_encode(array('errors' => $m)), "\n";
};
if (!function_exists('fw')) {
	$unyson_cli_answer('Unyson is not active');
	return;
}
`

// Extension manager writes go through the WordPress filesystem API, which
// must be initialized first when running outside an admin request.
const snippetFilesystem = `
global $wp_filesystem;
if (!$wp_filesystem) {
	if (!function_exists('WP_Filesystem')) {
		require_once ABSPATH . 'wp-admin/includes/file.php';
	}
	WP_Filesystem();
}
`

const (
	phpInstalled = `$unyson_cli_answer(true, array_keys(fw()->extensions->manager->get_installed_extensions()));`
	phpActive    = `$unyson_cli_answer(true, array_keys(fw()->extensions->get_all()));`
	phpSupported = `$unyson_cli_answer(true, array_keys(fw()->extensions->manager->get_supported_extensions()));`

	phpInstall = snippetFilesystem + `
$unyson_cli_answer(fw()->extensions->manager->install_extensions(
	array_fill_keys($in['names'], array()),
	array('activate' => !empty($in['activate']))
));`
	phpUninstall = snippetFilesystem + `
$unyson_cli_answer(fw()->extensions->manager->uninstall_extensions(array_fill_keys($in['names'], array())));`
	phpActivate = `
$unyson_cli_answer(fw()->extensions->manager->activate_extensions(array_fill_keys($in['names'], array())));`
	phpDeactivate = `
$unyson_cli_answer(fw()->extensions->manager->deactivate_extensions(array_fill_keys($in['names'], array())));`

	phpVersion = `
$ext = fw_ext($in['name']);
$unyson_cli_answer(true, $ext ? $ext->manifest->get_version() : null);`
)

func renderSnippet(body, input string) string {
	return strings.Replace(snippetPrelude, "%INPUT%", input, 1) + body
}
