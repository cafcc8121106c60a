package live

// planScript decides, for each item of a render frame, whether it should
// play its transition. Only items whose id/state pair is new since the
// previous frame animate; the rest are swapped in with their final classes.
const planScript = `function crispyPlan(shown, items) {
  var next = {};
  var animate = [];
  for (var i = 0; i < items.length; i++) {
    var key = items[i].id + ":" + items[i].state;
    next[key] = true;
    animate.push(!shown[key]);
  }
  return {next: next, animate: animate};
}`

// clientScript keeps the page's container in sync with the server.
// Each render frame replaces the container. Dismiss clicks are forwarded,
// and toasts that start leaving are reported once their exit transition
// has run.
const clientScript = planScript + `
(function () {
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + "/ws");
  var version = 0;
  var shown = {};
  var reported = {};

  function send(type, id) {
    if (ws.readyState === 1) ws.send(JSON.stringify({type: type, id: Number(id)}));
  }

  function classes(item, name) {
    return (item.getAttribute("data-" + name) || "").split(" ").filter(Boolean);
  }

  function apply(el) {
    var items = Array.prototype.slice.call(el.querySelectorAll("[data-toast-id]"));
    var plan = crispyPlan(shown, items.map(function (item) {
      return {id: item.getAttribute("data-toast-id"), state: item.getAttribute("data-state")};
    }));
    shown = plan.next;

    items.forEach(function (item, i) {
      var id = item.getAttribute("data-toast-id");
      var state = item.getAttribute("data-state");
      var from = classes(item, state + "-from");
      var to = classes(item, state + "-to");

      if (!plan.animate[i]) {
        if (to.length) item.classList.add.apply(item.classList, to);
        return;
      }
      if (from.length) item.classList.add.apply(item.classList, from);
      requestAnimationFrame(function () {
        if (from.length) item.classList.remove.apply(item.classList, from);
        if (to.length) item.classList.add.apply(item.classList, to);
      });
      if (state === "leave" && !reported[id]) {
        reported[id] = true;
        var sent = false;
        var done = function () { if (!sent) { sent = true; send("leave", id); } };
        item.addEventListener("transitionend", done, {once: true});
        setTimeout(done, 200);
      }
    });
  }

  document.addEventListener("click", function (ev) {
    var btn = ev.target.closest("[data-dismiss]");
    if (btn && !btn.disabled) send("dismiss", btn.getAttribute("data-dismiss"));
  });

  ws.onmessage = function (ev) {
    var f = JSON.parse(ev.data);
    if (f.type === "error") { console.warn("crispy:", f.code, f.message); return; }
    if (f.type !== "render" || f.version < version) return;
    version = f.version;
    var old = document.getElementById("crispy-toaster");
    var tmp = document.createElement("div");
    tmp.innerHTML = f.html;
    var el = tmp.firstElementChild;
    if (old) old.replaceWith(el); else document.body.appendChild(el);
    apply(el);
  };
})();`
